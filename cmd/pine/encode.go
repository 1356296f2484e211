package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a value document into pinecone bytes",
	Long: `Encode a YAML, JSON or JSONC value document against a schema and
write the pinecone bytes.

Example:
  pine encode -s point.yaml -i point.json -O point.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		inputPath, _ := cmd.Flags().GetString("input")
		outPath, _ := cmd.Flags().GetString("out")
		compress, _ := cmd.Flags().GetBool("zstd")

		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}
		doc, err := readInput(inputPath)
		if err != nil {
			return err
		}
		v, err := parseValueDoc(doc)
		if err != nil {
			return err
		}

		data, err := s.Encode(v)
		if err != nil {
			return err
		}
		logger.Debug("encoded value", zap.Int("bytes", len(data)))

		if compress {
			if data, err = zstdCompress(data); err != nil {
				return err
			}
		}
		return writeOutput(outPath, data)
	},
}

func init() {
	encodeCmd.Flags().StringP("schema", "s", "", "schema file (YAML or JSONC)")
	encodeCmd.Flags().StringP("input", "i", "", "value document (default stdin)")
	encodeCmd.Flags().StringP("out", "O", "", "output file (default stdout)")
	encodeCmd.Flags().Bool("zstd", false, "compress the output with zstd")
	encodeCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(encodeCmd)
}
