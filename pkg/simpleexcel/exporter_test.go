package simpleexcel

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type person struct {
	Name  string  `json:"name"`
	Team  string  `json:"team"`
	Score float64 `json:"score"`
}

const peopleTemplate = `
sheets:
  - name: "People"
    sections:
      - id: "people"
        title: "Team Roster"
        show_header: true
        title_style:
          font: { bold: true, color: "#FFFFFF" }
          fill: { color: "#4F81BD" }
        columns:
          - field_name: "name"
            header: "Name"
            width: 20
          - field_name: "Team"
            header: "Team"
          - field_name: "score"
            header: "Score"
            formatter: "percent"
`

func TestDataExporter_YamlTemplate(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(peopleTemplate)
	require.NoError(t, err)

	exporter.RegisterFormatter("percent", func(v interface{}) interface{} {
		return fmt.Sprintf("%.0f%%", v.(float64)*100)
	})
	exporter.BindSectionData("people", []person{
		{Name: "Ada", Team: "Core", Score: 0.9},
		{Name: "Linus", Team: "Kernel", Score: 0.75},
	})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("People")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Team Roster", rows[0][0])
	assert.Equal(t, []string{"Name", "Team", "Score"}, rows[1])
	assert.Equal(t, []string{"Ada", "Core", "90%"}, rows[2])
	assert.Equal(t, []string{"Linus", "Kernel", "75%"}, rows[3])

	merged, err := f.GetMergeCells("People")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "C1", merged[0].GetEndAxis())
}

func TestDataExporter_Programmatic(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Summary").
		AddSection(&SectionConfig{
			ShowHeader: true,
			Data:       []map[string]interface{}{{"key": "total", "value": 3}},
			Columns: []ColumnConfig{
				{FieldName: "key", Header: "Key"},
				{FieldName: "value", Header: "Value", Formatter: func(v interface{}) interface{} {
					return fmt.Sprintf("#%v", v)
				}},
			},
		}).
		AddSection(&SectionConfig{
			Title: "Second",
			Data:  []*person{{Name: "Grace"}},
			Columns: []ColumnConfig{
				{FieldName: "Name"},
				{FieldName: "missing"},
			},
		})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary"}, f.GetSheetList())
	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	// Header, one data row, a blank spacer, then the titled section.
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"total", "#3"}, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, "Second", rows[3][0])
	assert.Equal(t, []string{"Grace"}, rows[4])
}

func TestDataExporter_Position(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Pinned").AddSection(&SectionConfig{
		Position: "C3",
		Data:     []person{{Name: "Ken"}},
		Columns:  []ColumnConfig{{FieldName: "Name"}},
	})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Pinned", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Ken", v)
}

func TestDataExporter_Outputs(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Out").AddSection(&SectionConfig{
		Data:    []person{{Name: "Barbara"}},
		Columns: []ColumnConfig{{FieldName: "Name"}},
	})

	data, err := exporter.ToBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	v, _ := f.GetCellValue("Out", "A1")
	assert.Equal(t, "Barbara", v)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, exporter.ExportToExcel(context.Background(), path))
	saved, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer saved.Close()
	v, _ = saved.GetCellValue("Out", "A1")
	assert.Equal(t, "Barbara", v)
}

func TestNewDataExporterFromYamlConfig_Errors(t *testing.T) {
	_, err := NewDataExporterFromYamlConfig("sheets: [")
	assert.Error(t, err)

	_, err = NewDataExporterFromYamlConfig("sheets: []")
	assert.Error(t, err)

	_, err = NewDataExporterFromYamlFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConvertToRows(t *testing.T) {
	type badge struct {
		ID       int `json:"id"`
		MetaData map[string]interface{}
		hidden   string
	}

	rows, err := ConvertToRows([]badge{{ID: 7, MetaData: map[string]interface{}{"Floor": "3"}, hidden: "x"}})
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{{
		"ID":             7,
		"id":             7,
		"MetaData_Floor": "3",
	}}, rows)

	rows, err = ConvertToRows(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = ConvertToRows(badge{})
	assert.Error(t, err)

	_, err = ConvertToRows([]int{1})
	assert.Error(t, err)
}
