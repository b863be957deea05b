package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc"
)

type recognizeOptions struct {
	Faces     []string
	ChunkSize int
}

var recognizeOpts recognizeOptions

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image_path>",
	Short: "Stream an image and print one identity embedding per face box",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runRecognize(cmd.Context(), cmd.OutOrStdout(), args[0], recognizeOpts)
	},
}

func init() {
	recognizeCmd.Flags().StringArrayVarP(&recognizeOpts.Faces, "face", "f", nil, "Face box as x,y,w,h (repeatable, order is kept)")
	recognizeCmd.Flags().IntVar(&recognizeOpts.ChunkSize, "chunk-size", rpc.DefaultChunkSize, "Bytes per streamed image chunk")
	rootCmd.AddCommand(recognizeCmd)
}

type identityOutput struct {
	Identity []float64 `json:"identity"`
}

type recognizeOutput struct {
	Identities []identityOutput `json:"identities"`
}

func runRecognize(ctx context.Context, out io.Writer, imagePath string, opts recognizeOptions) error {
	regions, err := parseBoxes(opts.Faces)
	if err != nil {
		return err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	client, err := rpc.NewClient(addr, opts.ChunkSize)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	identities, err := client.Recognise(ctx, regions, f)
	if err != nil {
		if code := rpc.ErrorCode(err); code != "" {
			return fmt.Errorf("recognition failed (%s): %w", code, err)
		}
		return fmt.Errorf("recognition failed: %w", err)
	}

	result := recognizeOutput{Identities: make([]identityOutput, len(identities))}
	for i, id := range identities {
		result.Identities[i] = identityOutput{Identity: id.Embedding}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// parseBoxes turns "x,y,w,h" flags into regions. Non-positive sizes are
// passed through; the server decides what to do with them.
func parseBoxes(raw []string) ([]domain.Region, error) {
	regions := make([]domain.Region, 0, len(raw))
	for _, s := range raw {
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("face %q: want x,y,w,h", s)
		}

		var v [4]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("face %q: %w", s, err)
			}
			v[i] = n
		}
		regions = append(regions, domain.Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]})
	}
	return regions, nil
}
