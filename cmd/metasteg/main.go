// Command metasteg encodes and decodes files against a reference binary.
//
// The reference file (typically an image) acts as the shared oracle: encode
// replaces every payload byte with an offset into the reference, decode
// resolves the offsets back. Both sides must use byte-identical copies of
// the reference file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/metasteg/blob"
	"github.com/arloliu/metasteg/format"
	"github.com/arloliu/metasteg/oracle"
)

var (
	referencePath string
	outputPath    string
	compression   string
	rawFormat     bool
	noChecksum    bool
	randomPolicy  bool
)

var rootCmd = &cobra.Command{
	Use:   "metasteg [command] (flags)",
	Short: "encode/decode payloads as offsets into a reference binary",
	Long: `metasteg transforms a payload file into a blob of offsets into a reference
binary (e.g. an image), and reverses the transformation given the same
reference. The blob is meaningless without the exact reference file.`,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <input>",
	Short: "encode a payload file against the reference binary",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <input>",
	Short: "decode an offset blob against the reference binary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func main() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(encodeCmd, decodeCmd)

	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(
			&referencePath, "reference", "r", "", "path to the reference binary (required)")
		cmd.Flags().StringVarP(
			&outputPath, "output", "o", "", "path to write the result to (required)")
		cmd.Flags().BoolVar(
			&rawFormat, "raw", false,
			"use the headerless raw offset format instead of the framed format")
		_ = cmd.MarkFlagRequired("reference")
		_ = cmd.MarkFlagRequired("output")
	}

	encodeCmd.Flags().StringVar(
		&compression, "compression", "none",
		"offset payload compression: none, zstd, s2 or lz4 (framed format only)")
	encodeCmd.Flags().BoolVar(
		&noChecksum, "no-checksum", false,
		"omit the payload checksum from the blob header (framed format only)")
	encodeCmd.Flags().BoolVar(
		&randomPolicy, "random", false,
		"pick uniformly among occurrences instead of the first one")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	payload, reference, err := readInputs(args[0])
	if err != nil {
		return err
	}

	var policy oracle.SelectionPolicy = oracle.NewFirstOccurrence()
	if randomPolicy {
		policy = oracle.NewRandomOccurrence()
	}

	var encoded []byte
	if rawFormat {
		encoded, err = blob.EncodeRaw(payload, reference, policy)
	} else {
		comp, perr := parseCompression(compression)
		if perr != nil {
			return perr
		}

		var encoder *blob.Encoder
		encoder, err = blob.NewEncoder(reference,
			blob.WithCompression(comp),
			blob.WithChecksum(!noChecksum),
			blob.WithSelectionPolicy(policy),
		)
		if err != nil {
			return err
		}

		if err = encoder.Write(payload); err != nil {
			return err
		}
		encoded, err = encoder.Finish()
	}
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, encoded, 0o644)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, reference, err := readInputs(args[0])
	if err != nil {
		return err
	}

	var payload []byte
	if rawFormat {
		payload, err = blob.DecodeRaw(data, reference)
	} else {
		var decoder *blob.Decoder
		decoder, err = blob.NewDecoder(data)
		if err != nil {
			return err
		}
		payload, err = decoder.Decode(reference)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, payload, 0o644)
}

// readInputs loads the input and reference files fully into memory; the core
// operates on in-memory buffers only.
func readInputs(inputPath string) (input, reference []byte, err error) {
	input, err = os.ReadFile(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	reference, err = os.ReadFile(referencePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read reference: %w", err)
	}

	return input, reference, nil
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, zstd, s2 or lz4)", name)
	}
}
