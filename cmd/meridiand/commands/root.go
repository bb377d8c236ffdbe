package commands

import (
	"github.com/spf13/cobra"

	"github.com/meridian-network/meridian/src/config"
)

var _config = config.NewDefaultConfig()

// RootCmd is the root command for Meridian
var RootCmd = &cobra.Command{
	Use:              "meridiand",
	Short:            "meridian node",
	TraverseChildren: true,
}
