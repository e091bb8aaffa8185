// Package io reads metric tables and chart metadata from files and writes
// exported charts.
//
// # Dataset JSON
//
// A dataset document holds the table column by column, categories first, and
// the chart metadata:
//
//	{
//	  "data": {
//	    "Category": ["Good", "Average", "Bad"],
//	    "2022": [12, 12, 2],
//	    "2023": [22, 18, 9]
//	  },
//	  "metadata": {
//	    "title": "Code Quality",
//	    "y_label": "Share of projects",
//	    "trigrams": {"2023": {"Bad": ["ABC", "DEF"]}}
//	  }
//	}
//
// Year columns keep their document order. "img_name" is accepted as an alias
// of "title". Use [ImportDataset] for a path or [ReadDataset] for any
// io.Reader; [WriteDataset] produces the same shape.
//
// # Workbooks
//
// [ReadWorkbook] reads one sheet of an .xlsx file: the first row is the
// header, its first cell must be "Category" and the others are the years;
// each following row is one category. Empty rows are skipped.
//
// # Metadata TOML
//
// [ImportMetadata] reads the same metadata fields from a TOML file:
//
//	title = "Code Quality"
//	y_label = "Share of projects"
//
//	[trigrams.2023]
//	Bad = ["ABC", "DEF"]
//
// # Export
//
// [SanitizeBaseName] turns a chart title into a file name (trimmed,
// lowercased, spaces replaced by underscores) and [OutputPath] appends the
// format extension; [WriteFile] creates missing directories.
package io
