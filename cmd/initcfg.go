package main

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/vendor-scout/internal/config"
)

var (
	initPath  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with all defaults",
	RunE: func(_ *cobra.Command, _ []string) error {
		if !initForce {
			if _, err := os.Stat(initPath); err == nil {
				return eris.Errorf("init: %s already exists (use --force to overwrite)", initPath)
			}
		}

		doc := nestDefaults(config.Defaults())
		payload, err := yaml.Marshal(doc)
		if err != nil {
			return eris.Wrap(err, "init: marshal config")
		}
		if err := os.WriteFile(initPath, payload, 0o644); err != nil {
			return eris.Wrap(err, "init: write config")
		}

		zap.L().Info("config written", zap.String("path", initPath))
		return nil
	},
}

// nestDefaults turns dotted config keys into the nested map yaml expects.
func nestDefaults(flat map[string]any) map[string]any {
	doc := make(map[string]any)
	for key, val := range flat {
		parts := strings.Split(key, ".")
		node := doc
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = val
	}
	return doc
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "config.yaml", "where to write the config file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
