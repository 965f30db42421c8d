// Package pagegen turns spreadsheet rows into static HTML pages.
//
// Each data row of a named worksheet becomes one page: placeholder tokens of
// the form [column name] in an HTML template are replaced with the row's cell
// values, image references are rewritten to point at a published images
// folder, and the rendered tree can be packed into a zip archive for deploy.
//
// # Generation
//
// Render one page per row:
//
//	config := pagegen.Config{
//		WorkbookPath: "pages.xlsx",
//		Sheet:        "Sheet1",
//		TemplatePath: "template.html",
//		OutputDir:    "dist/pages",
//		Profile:      pagegen.DefaultProfile(),
//	}
//	result, err := pagegen.Generate(ctx, config)
//
// # Linting
//
// Audit template placeholders against a column profile before a run:
//
//	lintConfig := pagegen.LintConfig{
//		TemplatePaths: []string{"templates/**/*.html"},
//		Profile:       pagegen.DefaultProfile(),
//	}
//	result, err := pagegen.Lint(lintConfig)
//
// # CLI Tool
//
// pagegen also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/pagegen/cmd/pagegen@latest
package pagegen
