package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/kgraph-cli/internal/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage configuration profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMODEL\tCHUNK\tOVERLAP\tDESCRIPTION")
		for _, name := range config.ProfileNames() {
			p, _ := config.GetProfile(name)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				name, p.Anthropic.Model, p.Chunking.ChunkSize, p.Chunking.Overlap, p.Description)
		}
		return tw.Flush()
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetProfile(args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var profilesApplyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Apply a profile and save the resulting config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetProfile(args[0])
		if err != nil {
			return err
		}
		config.ApplyProfile(cfg, p)

		out, _ := cmd.Flags().GetString("out")
		if err := config.WriteConfigFile(cfg, out); err != nil {
			return err
		}
		fmt.Printf("Profile %q written to %s\n", args[0], out)
		return nil
	},
}

func init() {
	profilesApplyCmd.Flags().String("out", "config.yaml", "config file to write")

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesApplyCmd)
	rootCmd.AddCommand(profilesCmd)
}
