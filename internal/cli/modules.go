package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules [name]",
	Short: "List available modules or describe one",
	Long:  "Without arguments lists every registered module. With a module name, shows its option schema.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}

func runModules(cmd *cobra.Command, args []string) error {
	reg := newRegistry()

	if len(args) == 1 {
		_, desc, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		describeModule(cmd.OutOrStdout(), desc)
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Category", "Safe", "Description"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, desc := range reg.List() {
		table.Append([]string{desc.Name, desc.Category, strconv.FormatBool(desc.Safe), desc.Description})
	}
	table.Render()
	return nil
}

func describeModule(w io.Writer, desc types.Descriptor) {
	fmt.Fprintf(w, "%s: %s\n", desc.Name, desc.Description)
	fmt.Fprintf(w, "category: %s, safe: %t\n", desc.Category, desc.Safe)

	if len(desc.Options) == 0 {
		fmt.Fprintln(w, "no module options")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Option", "Type", "Required", "Default", "Help"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, opt := range desc.Options {
		def := ""
		if opt.Default != nil {
			def = fmt.Sprintf("%v", opt.Default)
		}
		table.Append([]string{opt.Name, opt.Type, strconv.FormatBool(opt.Required), def, opt.Help})
	}
	table.Render()
}
