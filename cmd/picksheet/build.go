package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/pick"
)

var (
	buildDocxPath    string
	buildSkipXLSX    bool
	buildMappingPath string
	buildSort        string
	buildSheetName   string
	buildNoBreaks    bool
)

var buildCmd = &cobra.Command{
	Use:   "build <원본.xlsx> <결과.xlsx>",
	Short: "Build address-grouped picking sheets from an order export",
	Long: `Build reads an order export, groups its rows by delivery address with a
quantity subtotal per address, and writes a print-ready picking workbook.
A matching Word document is written when --docx is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDocxPath, "docx", "", "Also write a Word picking sheet to this path")
	buildCmd.Flags().BoolVar(&buildSkipXLSX, "skip-xlsx", false, "Skip the Excel output (Word only)")
	buildCmd.Flags().StringVar(&buildMappingPath, "mapping", "", "JSON file overriding the source column letters")
	buildCmd.Flags().StringVar(&buildSort, "sort", "desc", "Product code order: asc or desc")
	buildCmd.Flags().StringVar(&buildSheetName, "sheet-name", "", "Output sheet name")
	buildCmd.Flags().BoolVar(&buildNoBreaks, "no-page-breaks", false, "Do not start each address group on a new page")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts := picksheet.DefaultOptions()
	opts.SheetName = buildSheetName
	opts.NoPageBreaks = buildNoBreaks
	opts.DocxPath = buildDocxPath
	if !buildSkipXLSX {
		opts.XLSXPath = args[1]
	}

	dir, err := pick.ParseDirection(buildSort)
	if err != nil {
		return err
	}
	opts.Direction = dir

	if buildMappingPath != "" {
		cm, err := colref.LoadColumnMap(buildMappingPath)
		if err != nil {
			return err
		}
		opts.Columns = cm
	}

	result, err := picksheet.Build(args[0], opts)
	if err != nil {
		return err
	}

	if opts.XLSXPath != "" {
		PrintSuccess(fmt.Sprintf("엑셀 완료: %s", opts.XLSXPath))
	}
	if opts.DocxPath != "" {
		PrintSuccess(fmt.Sprintf("워드 완료: %s", opts.DocxPath))
	}
	PrintLabelValue("주소 그룹", strconv.Itoa(result.Table.GroupCount()))
	PrintLabelValue("주문 행", strconv.Itoa(result.Table.RowCount()))
	return nil
}
