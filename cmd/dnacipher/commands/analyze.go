package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Danishprabhu04/image-encrypt/metrics"
	"github.com/Danishprabhu04/image-encrypt/models"
)

func analyzeCmd() *cobra.Command {
	var reference string
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Print the entropy of an image, and its distance to a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, meta, err := readImage(args[0], false)
			if err != nil {
				return err
			}
			m := metrics.Analyze(img)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %dx%d, %d channel(s), %s\n", label.Sprint("Image:"), img.Width, img.Height, img.Channels, meta.Format)
			printMetric(out, "entropy", "%.4f", m.Entropy)
			for c, e := range m.ChannelEntropy {
				printMetric(out, fmt.Sprintf("ch%d", c), "%.4f", e)
			}

			if reference == "" {
				return nil
			}
			ref, _, err := readImage(reference, false)
			if err != nil {
				return err
			}
			if ref.Width != img.Width || ref.Height != img.Height || ref.Channels != img.Channels {
				return fmt.Errorf("%w: reference is %dx%dx%d", models.ErrDimensionMismatch, ref.Width, ref.Height, ref.Channels)
			}
			npcr, err := metrics.NPCR(ref.Pix, img.Pix)
			if err != nil {
				return err
			}
			uaci, err := metrics.UACI(ref.Pix, img.Pix)
			if err != nil {
				return err
			}
			psnr, err := metrics.PSNR(ref.Pix, img.Pix)
			if err != nil {
				return err
			}
			printMetric(out, "npcr", "%.4f%%", npcr)
			printMetric(out, "uaci", "%.4f%%", uaci)
			printMetric(out, "psnr", "%.2f dB", psnr)
			return nil
		},
	}
	cmd.Flags().StringVar(&reference, "reference", "", "image to compare against (same shape)")
	return cmd
}
