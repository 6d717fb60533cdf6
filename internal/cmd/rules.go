package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/gtlint/internal/rulecfg"
	"github.com/pthm/gtlint/internal/ui"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [categories|guidelines]",
		Short: "List configured category and guideline sets",
		Long: `Print the rule sets of the settings directory, or of the built-in
settings, together with the predicates of every rule.

Examples:
  gtlint rules
  gtlint rules guidelines --settings ./settings
  gtlint rules categories --legacy-grammar -s ./old-settings`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(rulecfg.Categories), string(rulecfg.Guidelines)},
		RunE:      runRules,
	}
}

type ruleSetDoc struct {
	Kind  string    `json:"kind" yaml:"kind"`
	Name  string    `json:"name" yaml:"name"`
	Rules []ruleDoc `json:"rules" yaml:"rules"`
}

type ruleDoc struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       string   `json:"kind" yaml:"kind"`
	Predicates []string `json:"predicates" yaml:"predicates"`
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	u := newUI(cmd, cfg)

	kinds := []rulecfg.Kind{rulecfg.Categories, rulecfg.Guidelines}
	if len(args) > 0 {
		switch k := rulecfg.Kind(args[0]); k {
		case rulecfg.Categories, rulecfg.Guidelines:
			kinds = []rulecfg.Kind{k}
		default:
			return fmt.Errorf("unknown settings kind %q (want categories or guidelines)", args[0])
		}
	}

	opts := rulecfg.ParseOptions{Grammar: cfg.Grammar()}
	var sets []ruleSetDoc
	for _, kind := range kinds {
		rc, err := rulecfg.LoadSettings(cfg.Settings, kind, opts)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", kind, err)
		}
		sets = append(sets, ruleSetDocs(kind, rc)...)
	}

	return writeRuleSets(u, cfg.Format, sets)
}

func ruleSetDocs(kind rulecfg.Kind, rc *rulecfg.Config) []ruleSetDoc {
	var out []ruleSetDoc
	for _, name := range rc.Names() {
		set, _ := rc.Set(name)
		doc := ruleSetDoc{Kind: string(kind), Name: name}
		for _, rule := range set.Rules() {
			rd := ruleDoc{Name: rule.Name, Kind: rule.Kind.String()}
			for _, p := range rule.Predicates {
				rd.Predicates = append(rd.Predicates, p.String())
			}
			doc.Rules = append(doc.Rules, rd)
		}
		out = append(out, doc)
	}
	return out
}

func writeRuleSets(u *ui.UI, format string, sets []ruleSetDoc) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(u.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(sets)
	case "yaml":
		encoder := yaml.NewEncoder(u.Writer)
		if err := encoder.Encode(sets); err != nil {
			return err
		}
		return encoder.Close()
	default:
		printRuleSets(u.Writer, u.Styles, sets)
		return nil
	}
}

func printRuleSets(w io.Writer, s *ui.Styles, sets []ruleSetDoc) {
	if len(sets) == 0 {
		fmt.Fprintln(w, s.Warning.Render(s.IconWarning+" no rule sets configured"))
		return
	}
	for i, set := range sets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", s.Header.Render("["+set.Name+"]"), s.Subheader.Render(set.Kind))
		for j, rule := range set.Rules {
			conn, _ := s.Connector(j == len(set.Rules)-1)
			fmt.Fprintf(w, "%s%s %s", conn, s.Category.Render(rule.Name), s.Subheader.Render("("+rule.Kind+")"))
			for _, p := range rule.Predicates {
				fmt.Fprintf(w, " %s", s.Codepoint.Render(fmt.Sprintf("%q", p)))
			}
			fmt.Fprintln(w)
		}
	}
}
