package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A table known to the metadata, with its fields.
type Table struct {
	metabase.TableMetadata

	fields []*Field // The fields of the table, sorted by position.
}

// Returns the fields of the table, sorted by position.
func (t *Table) Fields() []*Field {
	return t.fields
}

// Returns the name to display for the table, falling back to its name.
func (t *Table) DisplayName() string {
	if t.TableMetadata.DisplayName != "" {
		return t.TableMetadata.DisplayName
	}
	return t.Name
}

// Metadata about tables and fields, against which cards are interpreted.
// It is read-only once built.
type Metadata struct {
	tables map[int]*Table
	fields map[int]*Field
}

// Creates metadata from a list of tables, as returned by the Metabase API.
func New(tables []metabase.TableMetadata) *Metadata {
	md := &Metadata{
		tables: make(map[int]*Table, len(tables)),
		fields: make(map[int]*Field),
	}

	for _, t := range tables {
		table := &Table{TableMetadata: t}

		for _, f := range t.Fields {
			field := &Field{Field: f, table: table}
			if field.TableId == 0 {
				field.TableId = t.Id
			}

			table.fields = append(table.fields, field)
			md.fields[f.Id] = field
		}

		sort.SliceStable(table.fields, func(i, j int) bool {
			return table.fields[i].Position < table.fields[j].Position
		})

		md.tables[t.Id] = table
	}

	return md
}

// Parses metadata from its JSON representation: a list of tables including their fields.
func Parse(data []byte) (*Metadata, error) {
	var tables []metabase.TableMetadata
	err := json.Unmarshal(data, &tables)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return New(tables), nil
}

// Reads and parses metadata from a JSON file.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Returns the table with the given ID, or `nil` if it is unknown.
func (md *Metadata) Table(id int) *Table {
	if md == nil {
		return nil
	}
	return md.tables[id]
}

// Returns the field with the given ID, or `nil` if it is unknown.
func (md *Metadata) Field(id int) *Field {
	if md == nil {
		return nil
	}
	return md.fields[id]
}

// Finds a field of a table using its name.
func (md *Metadata) FieldByName(tableId int, name string) *Field {
	table := md.Table(tableId)
	if table == nil {
		return nil
	}

	for _, f := range table.fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}
