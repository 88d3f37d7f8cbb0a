package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danishprabhu04/image-encrypt/keys"
)

func decryptCmd() *cobra.Command {
	var keyText string
	cmd := &cobra.Command{
		Use:   "decrypt <input.png> <output.png>",
		Short: "Decrypt a PNG produced by encrypt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keys.Parse(keyText)
			if err != nil {
				return err
			}
			img, _, err := readImage(args[0], true)
			if err != nil {
				return err
			}

			s, cleanup := startSpinner("Decrypting image...")
			dec, err := newCipher().Decrypt(img, key)
			if err == nil {
				err = writePNG(args[1], dec)
			}
			if err != nil {
				s.FinalMSG = failure.Sprint("✗") + " Decryption failed\n"
				cleanup()
				return err
			}
			cleanup()

			fmt.Fprintf(cmd.OutOrStdout(), "%s Decrypted %s to %s\n", success.Sprint("✓"), args[0], highlight.Sprint(args[1]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyText, "key", "k", "", "key printed by encrypt")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
