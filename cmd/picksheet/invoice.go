package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/csvenc"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/sheetio"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/tracking"
)

var (
	invoiceTrackingPath string
	invoiceSmartstore   string
	invoiceCoupang      string
	invoiceTtarimall    string
	invoiceOutDir       string
	invoiceCSV          bool
	invoiceCSVEncoding  string
	invoiceCSVSep       string
	invoiceCarrierCode  string
	invoiceCarrierName  string
	invoiceSheetName    string
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice --tracking <송장파일.xls>",
	Short: "Register courier tracking numbers into marketplace dispatch files",
	Long: `Invoice reduces a courier invoice to (order id, tracking number) pairs,
classifies them by the order id shape (LO marker → lao, 16 digits →
smartstore), and writes each marketplace's dispatch upload. Order files
supplied via --smartstore, --coupang, and --ttarimall are filled with the
matching tracking numbers; the lao upload is always generated.`,
	Args: cobra.NoArgs,
	RunE: runInvoice,
}

func init() {
	invoiceCmd.Flags().StringVar(&invoiceTrackingPath, "tracking", "", "Courier invoice with order and tracking numbers (required)")
	invoiceCmd.Flags().StringVar(&invoiceSmartstore, "smartstore", "", "smartstore order export to fill")
	invoiceCmd.Flags().StringVar(&invoiceCoupang, "coupang", "", "coupang order export to fill")
	invoiceCmd.Flags().StringVar(&invoiceTtarimall, "ttarimall", "", "ttarimall order export to fill")
	invoiceCmd.Flags().StringVar(&invoiceOutDir, "out-dir", ".", "Directory for the generated files")
	invoiceCmd.Flags().BoolVar(&invoiceCSV, "csv", false, "Also write each output as CSV")
	invoiceCmd.Flags().StringVar(&invoiceCSVEncoding, "csv-encoding", "cp949", "CSV encoding: utf-8, utf-8-sig, cp949, euc-kr")
	invoiceCmd.Flags().StringVar(&invoiceCSVSep, "csv-sep", "comma", "CSV separator: comma, semicolon, tab, pipe")
	invoiceCmd.Flags().StringVar(&invoiceCarrierCode, "carrier-code", "", `lao carrier code (default "04")`)
	invoiceCmd.Flags().StringVar(&invoiceCarrierName, "carrier-name", "", `smartstore carrier name (default "CJ대한통운")`)
	invoiceCmd.Flags().StringVar(&invoiceSheetName, "sheet-name", "", `smartstore output sheet (default "발송처리")`)
	_ = invoiceCmd.MarkFlagRequired("tracking")
	rootCmd.AddCommand(invoiceCmd)
}

func runInvoice(cmd *cobra.Command, args []string) error {
	csvOpts, err := invoiceCSVOptions()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(invoiceOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	inv, err := sheetio.Load(invoiceTrackingPath)
	if err != nil {
		return fmt.Errorf("송장파일 읽기 오류: %w", err)
	}
	entries, err := tracking.Extract(inv)
	if err != nil {
		return err
	}
	buckets := tracking.Classify(entries)

	topts := tracking.Options{
		LaoCarrierCode:    invoiceCarrierCode,
		SmartstoreCarrier: invoiceCarrierName,
		SmartstoreSheet:   invoiceSheetName,
	}
	ts := time.Now().Format("20060102_150405")

	lao := tracking.LaoTable(buckets.Lao, topts)
	if err := writeInvoiceTable("라오 송장 완성", lao, invoicePath("라오_송장_완성", ts), "", csvOpts); err != nil {
		return err
	}

	if invoiceSmartstore != "" {
		orders, err := sheetio.Load(invoiceSmartstore)
		if err != nil {
			return fmt.Errorf("스마트스토어 주문 파일 읽기 오류: %w", err)
		}
		filled, _, err := tracking.FillSmartstore(orders, buckets.Smartstore, topts)
		if err != nil {
			return err
		}
		if err := writeInvoiceTable("스마트스토어 송장 완성", filled, invoicePath("스마트스토어_송장_완성", ts), topts.Sheet(), csvOpts); err != nil {
			return err
		}
	} else if len(buckets.Smartstore) > 0 {
		standalone := tracking.SmartstoreTable(buckets.Smartstore, topts)
		if err := writeInvoiceTable("스마트스토어 송장 완성", standalone, invoicePath("스마트스토어_송장_완성", ts), topts.Sheet(), csvOpts); err != nil {
			return err
		}
	}

	coupangMatches := 0
	if invoiceCoupang != "" {
		orders, err := sheetio.Load(invoiceCoupang)
		if err != nil {
			return fmt.Errorf("쿠팡 주문 파일 읽기 오류: %w", err)
		}
		filled, matched, err := tracking.FillCoupang(orders, inv)
		if err != nil {
			return err
		}
		coupangMatches = matched
		if err := writeInvoiceTable("쿠팡 송장 완성", filled, invoicePath("쿠팡_송장_완성", ts), "", csvOpts); err != nil {
			return err
		}
	}

	ttarimallChanges := 0
	if invoiceTtarimall != "" {
		orders, err := sheetio.Load(invoiceTtarimall)
		if err != nil {
			return fmt.Errorf("떠리몰 주문 파일 읽기 오류: %w", err)
		}
		filled, changed, err := tracking.FillTtarimall(orders, buckets.All)
		if err != nil {
			return err
		}
		ttarimallChanges = changed
		if err := writeInvoiceTable("떠리몰 송장 완성", filled, invoicePath("떠리몰_송장_완성", ts), "", csvOpts); err != nil {
			return err
		}
	}

	PrintSuccess(fmt.Sprintf("분류/매칭 완료: 라오 %d건 / 스마트스토어 %d건 / 쿠팡 업데이트 예정 %d건 / 떠리몰 갱신 %d건",
		len(buckets.Lao), len(buckets.Smartstore), coupangMatches, ttarimallChanges))
	return nil
}

func invoiceCSVOptions() (csvenc.Options, error) {
	var opts csvenc.Options
	enc, err := csvenc.ParseEncoding(invoiceCSVEncoding)
	if err != nil {
		return opts, err
	}
	sep, err := csvenc.ParseSeparator(invoiceCSVSep)
	if err != nil {
		return opts, err
	}
	opts.Encoding = enc
	opts.Separator = sep
	return opts, nil
}

func invoicePath(stem, ts string) string {
	return filepath.Join(invoiceOutDir, fmt.Sprintf("%s_%s.xlsx", stem, ts))
}

func writeInvoiceTable(label string, t *models.RawTable, path, sheet string, csvOpts csvenc.Options) error {
	if err := sheetio.Write(t, path, sheet); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	PrintSuccess(fmt.Sprintf("%s: %s", label, path))

	if invoiceCSV {
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if err := csvenc.Write(t, csvPath, csvOpts); err != nil {
			return fmt.Errorf("failed to write %s: %w", csvPath, err)
		}
		PrintSuccess(fmt.Sprintf("%s (CSV): %s", label, csvPath))
	}
	return nil
}
