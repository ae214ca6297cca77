package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect game rules",
	Long: `Print or validate the rules a variant resolves to.

Rules are looked up in order: --rules file, ~/.merge2048/rules/<variant>.yaml,
./rules/<variant>.yaml, then the built-in preset. A dumped file is a good
starting point for a custom one. Without a variant, dump prints the embedded
base file every preset starts from.

Examples:
  merge2048 rules dump
  merge2048 rules dump classic > rules/classic.yaml
  merge2048 rules check mini --rules ./mini.yaml`,
}

var rulesDumpCmd = &cobra.Command{
	Use:   "dump [variant]",
	Short: "Print resolved rules as YAML",
	Args:  cobra.MaximumNArgs(1),
	Run:   runRulesDump,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [variant]",
	Short: "Validate resolved rules",
	Args:  cobra.MaximumNArgs(1),
	Run:   runRulesCheck,
}

func init() {
	rulesCmd.AddCommand(rulesDumpCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

func variantArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return t2048.DefaultVariant
}

func loadVariantRules(variant string) config.Rules {
	if !registry.Exists(variant) {
		logger.Fatal("cannot load rules", "error", unknownVariant(variant))
	}
	rules, err := resolveRules(variant)
	if err != nil {
		logger.Fatal("cannot load rules", "variant", variant, "error", err)
	}
	return rules
}

func runRulesDump(_ *cobra.Command, args []string) {
	if err := dumpRules(os.Stdout, args); err != nil {
		logger.Fatal("cannot dump rules", "error", err)
	}
}

// dumpRules writes the embedded base rules file when no variant or --rules is given,
// otherwise the rules the variant resolves to.
func dumpRules(w io.Writer, args []string) error {
	if len(args) == 0 && flagRules == "" {
		_, err := w.Write(config.GetDefaultYAML())
		return err
	}

	variant := variantArg(args)
	if !registry.Exists(variant) {
		return unknownVariant(variant)
	}
	rules, err := resolveRules(variant)
	if err != nil {
		return fmt.Errorf("variant %s: %w", variant, err)
	}

	data, err := config.MarshalRules(rules)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func runRulesCheck(_ *cobra.Command, args []string) {
	variant := variantArg(args)
	rules := loadVariantRules(variant)

	if err := t2048.ValidateRules(rules); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", variant, err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok (%dx%d, target %d)\n", variant, rules.Width, rules.Height, rules.WinValue)
}
