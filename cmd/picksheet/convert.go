package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/convert"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/sheetio"
)

var (
	convertPlatform string
	convertOutput   string
	convertMapping  string
	convertTemplate string
	convertZip      string
)

var convertCmd = &cobra.Command{
	Use:   "convert <주문파일.xlsx> [주문파일2.xlsx ...]",
	Short: "Convert mall order exports onto the 3PL template",
	Long: `Convert reads laora, coupang, smartstore, or ttarimall order exports and
rewrites them onto the 7-column fulfillment template, preserving phone
numbers as text. With multiple inputs (or --zip) the platform is detected
per file and the results are bundled into a zip archive with a log.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertPlatform, "platform", "auto", "Source layout: auto, laora, coupang, smartstore, ttarimall")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (single input only)")
	convertCmd.Flags().StringVar(&convertMapping, "mapping", "", "JSON letter mapping for laora sources")
	convertCmd.Flags().StringVar(&convertTemplate, "template", "", "Workbook whose header row replaces the stock template columns")
	convertCmd.Flags().StringVar(&convertZip, "zip", "", "Bundle the converted files into this zip archive")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := convertOptions()
	if err != nil {
		return err
	}

	if len(args) > 1 || convertZip != "" {
		return runBatchConvert(args, opts)
	}
	return runSingleConvert(args[0], opts)
}

// convertOptions resolves the shared --template and --mapping flags.
func convertOptions() (convert.Options, error) {
	var opts convert.Options
	if convertTemplate != "" {
		tpl, err := sheetio.Load(convertTemplate)
		if err != nil {
			return opts, fmt.Errorf("failed to read template: %w", err)
		}
		opts.TemplateColumns = tpl.Headers
	}
	if convertMapping != "" {
		m, err := convert.LoadMapping(convertMapping, opts.TemplateColumns)
		if err != nil {
			return opts, err
		}
		opts.LaoraMapping = m
	}
	return opts, nil
}

func runSingleConvert(path string, opts convert.Options) error {
	platform, err := convert.ParsePlatform(convertPlatform)
	if err != nil {
		return err
	}

	src, err := sheetio.Load(path)
	if err != nil {
		return err
	}
	result, err := convert.Convert(src, platform, opts)
	if err != nil {
		return err
	}

	out := convertOutput
	if out == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out = filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s__%s_converted.xlsx", stem, result.Platform))
	}
	if err := sheetio.Write(result.Table, out, ""); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	PrintSuccess(fmt.Sprintf("%s 변환 완료: 총 %d행", strings.ToUpper(string(result.Platform)), len(result.Table.Rows)))
	PrintLabelValue("출력", out)
	return nil
}

func runBatchConvert(paths []string, opts convert.Options) error {
	zipPath := convertZip
	if zipPath == "" {
		zipPath = fmt.Sprintf("batch_converted_%s.zip", time.Now().Format("20060102_150405"))
	}

	entries, err := convert.Batch(paths, opts, zipPath)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.Err != nil {
			PrintWarning(fmt.Sprintf("%s: %v", e.Source, e.Err))
			continue
		}
		PrintLabelValue(e.Source, fmt.Sprintf("%s → %d행", strings.ToUpper(string(e.Platform)), e.Rows))
	}
	PrintSuccess(fmt.Sprintf("배치 변환이 완료되었습니다: %s", zipPath))
	return nil
}
