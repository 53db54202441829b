package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/convert"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/sheetio"
)

var (
	mappingTemplate string
	mappingMaxCols  int
)

// blankChoice marks a template column with no source column bound.
const blankChoice = "(비움)"

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage the laora column-letter mapping",
	Long: `Mapping manages the JSON file that binds each template column to a source
column letter for laora conversions. The same file feeds picksheet convert
via its --mapping flag.`,
}

var mappingInitCmd = &cobra.Command{
	Use:   "init <mapping.json>",
	Short: "Write the default laora mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingInit,
}

var mappingEditCmd = &cobra.Command{
	Use:   "edit <mapping.json>",
	Short: "Pick a column letter per template column interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingEdit,
}

var mappingShowCmd = &cobra.Command{
	Use:   "show <mapping.json>",
	Short: "Print the resolved mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingShow,
}

func init() {
	mappingCmd.PersistentFlags().StringVar(&mappingTemplate, "template", "", "Workbook whose header row replaces the stock template columns")
	mappingEditCmd.Flags().IntVar(&mappingMaxCols, "max-cols", 104, "Number of column letters offered by the picker")
	mappingCmd.AddCommand(mappingInitCmd)
	mappingCmd.AddCommand(mappingEditCmd)
	mappingCmd.AddCommand(mappingShowCmd)
	rootCmd.AddCommand(mappingCmd)
}

func mappingColumns() ([]string, error) {
	if mappingTemplate == "" {
		return convert.DefaultTemplateColumns, nil
	}
	tpl, err := sheetio.Load(mappingTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return tpl.Headers, nil
}

// defaultMappingFor binds each template column to its stock letter.
// Columns outside the stock template stay blank.
func defaultMappingFor(cols []string) convert.LetterMapping {
	defaults := convert.DefaultLaoraMapping()
	m := make(convert.LetterMapping, len(cols))
	for _, col := range cols {
		m[col] = defaults[col]
	}
	return m
}

func runMappingInit(cmd *cobra.Command, args []string) error {
	cols, err := mappingColumns()
	if err != nil {
		return err
	}
	if err := convert.SaveMapping(args[0], defaultMappingFor(cols)); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("라오라 매핑을 저장했습니다: %s", args[0]))
	return nil
}

func runMappingEdit(cmd *cobra.Command, args []string) error {
	cols, err := mappingColumns()
	if err != nil {
		return err
	}
	current, err := loadMappingOrDefaults(args[0], cols)
	if err != nil {
		return err
	}

	letters := colref.Letters(mappingMaxCols)
	options := append([]string{blankChoice}, letters...)

	edited := make(convert.LetterMapping, len(cols))
	for _, col := range cols {
		def := current[col]
		if def != "" {
			if i, err := colref.Index(def); err != nil || i >= len(letters) {
				def = ""
			}
		}
		if def == "" {
			def = blankChoice
		}

		var sel string
		prompt := &survey.Select{
			Message:  fmt.Sprintf("%s ⟶ 라오라 열 문자 선택", col),
			Options:  options,
			Default:  def,
			PageSize: 10,
		}
		if err := survey.AskOne(prompt, &sel); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return errors.New("편집이 취소되었습니다")
			}
			return err
		}
		if sel == blankChoice {
			sel = ""
		}
		edited[col] = sel
	}

	if err := convert.SaveMapping(args[0], edited); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("라오라 매핑을 저장했습니다: %s", args[0]))
	return nil
}

func runMappingShow(cmd *cobra.Command, args []string) error {
	cols, err := mappingColumns()
	if err != nil {
		return err
	}
	m, err := convert.LoadMapping(args[0], cols)
	if err != nil {
		return err
	}

	PrintSection("라오라 매핑")
	for _, col := range cols {
		letter := m[col]
		if letter == "" {
			letter = blankChoice
		}
		PrintLabelValue(col, letter)
	}
	return nil
}

func loadMappingOrDefaults(path string, cols []string) (convert.LetterMapping, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return defaultMappingFor(cols), nil
		}
		return nil, err
	}
	return convert.LoadMapping(path, cols)
}
