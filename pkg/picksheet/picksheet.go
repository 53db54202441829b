package picksheet

import (
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/pick"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/render"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/sheetio"
)

// Result reports what a build produced.
type Result struct {
	// Table is the sorted and grouped picking table.
	Table *models.PickingTable
	// Written lists the output files in the order they were written.
	Written []string
}

// Build reads an order export and writes the requested picking sheets.
func Build(srcPath string, opts Options) (*Result, error) {
	if opts.XLSXPath == "" && opts.DocxPath == "" {
		return nil, ErrNoOutput
	}

	src, err := sheetio.Load(srcPath)
	if err != nil {
		return nil, NewBuildError(srcPath, "read", err)
	}

	table, err := pick.Build(src, opts.columns(), opts.direction())
	if err != nil {
		return nil, NewBuildError(srcPath, "table", err)
	}

	type target struct {
		path     string
		renderer render.Renderer
	}
	var targets []target
	if opts.XLSXPath != "" {
		targets = append(targets, target{opts.XLSXPath, &render.XLSX{
			Options: render.XLSXOptions{
				SheetName:    opts.SheetName,
				NoPageBreaks: opts.NoPageBreaks,
			},
		}})
	}
	if opts.DocxPath != "" {
		targets = append(targets, target{opts.DocxPath, &render.Docx{}})
	}

	result := &Result{Table: table}
	for _, tg := range targets {
		if err := tg.renderer.Render(table, tg.path); err != nil {
			return nil, NewBuildError(tg.path, tg.renderer.Name(), err)
		}
		result.Written = append(result.Written, tg.path)
	}
	return result, nil
}
