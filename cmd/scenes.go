package cmd

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Volumetric", "Description"})
	for _, info := range scene.Presets() {
		table.Append([]string{
			info.Name,
			fmt.Sprintf("%t", info.Volumetric),
			info.Description,
		})
	}
	table.Render()
	return nil
}
