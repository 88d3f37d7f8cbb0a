package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danishprabhu04/image-encrypt/keys"
)

func keygenCmd() *cobra.Command {
	var kf keyFlags
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a key for the given round counts and coefficient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := kf.resolve()
			if err != nil {
				return err
			}
			logger.Debug().Int("d_rounds", key.DRounds).Int("p_rounds", key.PRounds).Float64("r", key.R).Float64("seed", key.Seed).Msg("key built")
			fmt.Fprintln(cmd.OutOrStdout(), keys.Format(key))
			warnPeriodic(cmd.ErrOrStderr(), key)
			return nil
		},
	}
	kf.register(cmd)
	cmd.Flags().Lookup("key").Usage = "normalise an existing key instead of building one"
	return cmd
}
