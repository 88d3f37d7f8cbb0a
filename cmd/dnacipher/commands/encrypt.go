package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danishprabhu04/image-encrypt/keys"
	"github.com/Danishprabhu04/image-encrypt/metrics"
)

// psnrCeiling is the PSNR above which a ciphertext still resembles its plaintext.
const psnrCeiling = 10.0

func encryptCmd() *cobra.Command {
	var (
		kf          keyFlags
		withMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt <input> <output.png>",
		Short: "Encrypt a PNG, JPEG or GIF image into a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := kf.resolve()
			if err != nil {
				return err
			}
			warnPeriodic(cmd.ErrOrStderr(), key)
			img, meta, err := readImage(args[0], false)
			if err != nil {
				return err
			}
			logger.Debug().Str("format", meta.Format).Int("width", img.Width).Int("height", img.Height).Msg("input decoded")

			s, cleanup := startSpinner("Encrypting image...")
			enc, m, err := newCipher().EncryptWithMetrics(img, key, withMetrics)
			if err == nil {
				err = writePNG(args[1], enc)
			}
			if err != nil {
				s.FinalMSG = failure.Sprint("✗") + " Encryption failed\n"
				cleanup()
				return err
			}
			cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Encrypted %s to %s\n", success.Sprint("✓"), args[0], highlight.Sprint(args[1]))
			fmt.Fprintf(out, "%s %s\n", label.Sprint("Key:"), highlight.Sprint(keys.Format(key)))
			if m != nil {
				printMetric(out, "entropy", "%.4f", m.Entropy)
				printMetric(out, "npcr", "%.4f%%", m.NPCR)
				printMetric(out, "uaci", "%.4f%%", m.UACI)
				printMetric(out, "psnr", "%.2f dB", m.PSNR)
				if !metrics.ValidatePSNR(m.PSNR, psnrCeiling) {
					fmt.Fprintf(out, "%s ciphertext PSNR is above %.0f dB\n", highlight.Sprint("⚠"), psnrCeiling)
				}
			}
			return nil
		},
	}
	kf.register(cmd)
	cmd.Flags().BoolVarP(&withMetrics, "metrics", "m", false, "report entropy, NPCR, UACI and PSNR")
	return cmd
}
