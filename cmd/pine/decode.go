package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode pinecone bytes into a readable form",
	Long: `Decode pinecone-encoded bytes using a schema and print the value
as JSON, YAML or CBOR.

Example:
  pine decode -s point.yaml -i point.bin -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		inputPath, _ := cmd.Flags().GetString("input")
		outPath, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		compressed, _ := cmd.Flags().GetBool("zstd")

		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}
		data, err := readInput(inputPath)
		if err != nil {
			return err
		}
		if compressed {
			if data, err = zstdDecompress(data); err != nil {
				return err
			}
		}

		v, err := s.Decode(data)
		if err != nil {
			return err
		}
		logger.Debug("decoded value", zap.Int("bytes", len(data)))

		out, err := renderValue(v, format)
		if err != nil {
			return err
		}
		return writeOutput(outPath, out)
	},
}

func init() {
	decodeCmd.Flags().StringP("schema", "s", "", "schema file (YAML or JSONC)")
	decodeCmd.Flags().StringP("input", "i", "", "input file (default stdin)")
	decodeCmd.Flags().StringP("out", "O", "", "output file (default stdout)")
	decodeCmd.Flags().StringP("format", "o", "json", "output format: json, yaml or cbor")
	decodeCmd.Flags().Bool("zstd", false, "input is zstd-compressed")
	decodeCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(decodeCmd)
}
