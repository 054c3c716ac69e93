package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/samuelfneumann/gobowl/environment/bowling"
	"github.com/spf13/cobra"
)

// PrintLayout writes the pins of a formation to w, one per line in
// identity order, as centre and top-left corner
func PrintLayout(w io.Writer, f bowling.Formation) error {
	pins, err := bowling.Layout(f)
	if err != nil {
		return err
	}

	for i, pin := range pins {
		min := pin.Min()
		fmt.Fprintf(w, "pin %v: centre (%v, %v), top-left (%v, %v)\n", i,
			pin.Center.X, pin.Center.Y, min.X, min.Y)
	}
	return nil
}

func LayoutCommand() *cobra.Command {
	var formation string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the canonical pin layout of a formation",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := bowling.Formation(formation)
			if formation == "" {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				f = conf.Formation
			}
			return PrintLayout(os.Stdout, f)
		},
	}
	cmd.Flags().StringVarP(&formation, "formation", "f", "",
		"Pin formation (triangle, row), defaults to the config's")
	return cmd
}
