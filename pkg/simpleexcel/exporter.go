package simpleexcel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Types
// =============================================================================

// FormatterFunc transforms a cell value before it is written.
type FormatterFunc func(v interface{}) interface{}

// DataExporter is the main entry point for exporting data.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs (for YAML flow)
	data map[string]interface{}
	// sheets holds manually added sheets (for programmatic flow)
	sheets     []*SheetBuilder
	formatters map[string]FormatterFunc
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a section of data in a sheet.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // Data is bound at runtime
	ShowHeader  bool           `yaml:"show_header"`
	Position    string         `yaml:"position"` // e.g., "A1"
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName     string        `yaml:"field_name"` // Struct field name, json tag or map key
	Header        string        `yaml:"header"`
	Width         float64       `yaml:"width"`
	FormatterName string        `yaml:"formatter"`
	Formatter     FormatterFunc `yaml:"-"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:       make(map[string]interface{}),
		formatters: make(map[string]FormatterFunc),
	}
}

// NewDataExporterFromYamlConfig parses a report template held in memory.
func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	return newFromYaml(strings.NewReader(config))
}

func NewDataExporterFromYamlFile(path string) (*DataExporter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	defer f.Close()
	return newFromYaml(f)
}

func newFromYaml(r io.Reader) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("decode yaml: template has no sheets")
	}

	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds data to a section ID (for YAML-based export).
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes fn available to columns that name it in FormatterName.
func (e *DataExporter) RegisterFormatter(name string, fn FormatterFunc) *DataExporter {
	e.formatters[name] = fn
	return e
}

// BuildExcel renders every sheet into a new workbook. The caller closes it.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()

	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		if idx, _ := f.GetSheetIndex(name); idx != -1 {
			return nil
		}
		_, err := f.NewSheet(name)
		return err
	}

	if e.template != nil {
		for _, sheetTmpl := range e.template.Sheets {
			if err := addSheet(sheetTmpl.Name); err != nil {
				f.Close()
				return nil, err
			}

			sections := make([]*SectionConfig, len(sheetTmpl.Sections))
			for j := range sheetTmpl.Sections {
				sec := sheetTmpl.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				sections[j] = &sec
			}
			if err := e.renderSections(f, sheetTmpl.Name, sections); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	for _, sb := range e.sheets {
		if err := addSheet(sb.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := e.renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// ExportToExcel generates the Excel file on disk.
func (e *DataExporter) ExportToExcel(ctx context.Context, path string) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// ToWriter writes the Excel file to the provided io.Writer.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StreamToResponse writes the Excel file directly to an HTTP response writer.
func (e *DataExporter) StreamToResponse(w http.ResponseWriter, filename string) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Transfer-Encoding", "binary")
	return e.ToWriter(w)
}

// ContentType is the MIME type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// =============================================================================
// SheetBuilder
// =============================================================================

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// =============================================================================
// Rendering Logic
// =============================================================================

// renderSections stacks sections vertically with one blank row between them unless a
// section pins itself with Position.
func (e *DataExporter) renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	nextRow := 1

	for _, sec := range sections {
		startCol, currentRow := 1, nextRow
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.ID, err)
			}
			startCol, currentRow = c, r
		}

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			if sec.TitleStyle != nil {
				styleID, err := createStyle(f, sec.TitleStyle)
				if err != nil {
					return err
				}
				endCell := cell
				if len(sec.Columns) > 1 {
					endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
					if err := f.MergeCell(sheet, cell, endCell); err != nil {
						return err
					}
				}
				if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
					return err
				}
			}
			currentRow++
		}

		if sec.ShowHeader {
			headerStyle := 0
			if sec.HeaderStyle != nil {
				id, err := createStyle(f, sec.HeaderStyle)
				if err != nil {
					return err
				}
				headerStyle = id
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if headerStyle != 0 {
					if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
						return err
					}
				}
				if col.Width > 0 {
					colName, _ := excelize.ColumnNumberToName(startCol + i)
					if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
						return err
					}
				}
			}
			currentRow++
		}

		rows, err := ConvertToRows(sec.Data)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}
		for _, row := range rows {
			for j, col := range sec.Columns {
				v, ok := row[col.FieldName]
				if !ok {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(startCol+j, currentRow)
				if err := f.SetCellValue(sheet, cell, e.format(col, v)); err != nil {
					return err
				}
			}
			currentRow++
		}

		if currentRow+1 > nextRow {
			nextRow = currentRow + 1
		}
	}

	return nil
}

func (e *DataExporter) format(col ColumnConfig, v interface{}) interface{} {
	if v == nil {
		return ""
	}
	if col.Formatter != nil {
		return col.Formatter(v)
	}
	if fn, ok := e.formatters[col.FormatterName]; ok && col.FormatterName != "" {
		return fn(v)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
