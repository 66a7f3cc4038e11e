package cmd

import (
	"fmt"

	"github.com/KaramelBytes/datavis-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	ptsIn     inputFlags
	ptsOut    outputFlags
	ptsPoints []string
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Chart manually entered points",
	Long: `Build a chart from points given on the command line, one --point per row:

  datavis points --point 1,10 --point 2,20 --point 3,25
  datavis points --schema temperature --type scatter --point 0,25,A --point 1,30,A

Each point is "x,y" or "x,y,category". Unlike file uploads, an invalid point is an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(ptsPoints) == 0 {
			return fmt.Errorf("at least one --point is required")
		}
		opt, err := ptsIn.options(cmd)
		if err != nil {
			return err
		}
		s, err := session.New(opt).FromPoints(ptsPoints)
		if err != nil {
			return err
		}
		logLoaded(s)
		p, err := s.Payload()
		if err != nil {
			return err
		}
		return ptsOut.emit(cmd, p, payloadTable(p, ptsOut.resolvedPrecision()))
	},
}

func init() {
	rootCmd.AddCommand(pointsCmd)
	ptsIn.register(pointsCmd, false)
	ptsOut.register(pointsCmd)
	pointsCmd.Flags().StringArrayVarP(&ptsPoints, "point", "p", nil, "a point as x,y[,category] (repeatable)")
}
