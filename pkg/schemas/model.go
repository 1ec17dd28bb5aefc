package schemas

import (
	"encoding/json"

	"github.com/thorn-jmh/errorst"
	"gopkg.in/yaml.v3"
)

// Document is a schema document holding the metadata of several tables.
type Document struct {
	Version string            `json:"version,omitempty" yaml:"version,omitempty"`
	Tables  map[string]*Table `json:"tables" yaml:"tables"`
}

// Table is the column and foreign key metadata of one table.
type Table struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Columns     []Column     `json:"columns" yaml:"columns"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
}

// Column describes one table column.
type Column struct {
	Name     string   `json:"name" yaml:"name"`
	TypeName TypeName `json:"type_name,omitempty" yaml:"type_name,omitempty"` // normalized keyword
	Type     string   `json:"type" yaml:"type"`                               // raw type, e.g. varchar(255)
	Nullable bool     `json:"nullable" yaml:"nullable"`
}

// ForeignKey is a single-column reference from Column to ForeignTable.ForeignColumn.
type ForeignKey struct {
	Column        string `json:"column" yaml:"column"`
	ForeignTable  string `json:"foreign_table" yaml:"foreign_table"`
	ForeignColumn string `json:"foreign_column" yaml:"foreign_column"`
}

// ForeignKeyFor returns the first foreign key whose source column is column.
func (t *Table) ForeignKeyFor(column string) (ForeignKey, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// normalize fills the derived fields left out of a hand written document.
func (d *Document) normalize() {
	for name, table := range d.Tables {
		if table == nil {
			table = &Table{}
			d.Tables[name] = table
		}
		if table.Name == "" {
			table.Name = name
		}
		for i := range table.Columns {
			col := &table.Columns[i]
			if col.TypeName == "" {
				col.TypeName = NormalizeType("", col.Type)
			} else {
				col.TypeName = NormalizeType(string(col.TypeName), col.Type)
			}
		}
	}
}

// >>>>>>>>>>>>>>>>>>>> foreign key decoding >>>>>>>>>>>>>>>>>>>>>>>

// foreignKeyFields accepts both the single column form and the
// composite form exported by Laravel's schema builder.
type foreignKeyFields struct {
	Column         string   `json:"column" yaml:"column"`
	ForeignTable   string   `json:"foreign_table" yaml:"foreign_table"`
	ForeignColumn  string   `json:"foreign_column" yaml:"foreign_column"`
	Columns        []string `json:"columns" yaml:"columns"`
	ForeignColumns []string `json:"foreign_columns" yaml:"foreign_columns"`
}

func (f foreignKeyFields) resolve() ForeignKey {
	fk := ForeignKey{
		Column:        f.Column,
		ForeignTable:  f.ForeignTable,
		ForeignColumn: f.ForeignColumn,
	}
	// composite keys are matched on their first column only
	if fk.Column == "" && len(f.Columns) > 0 {
		fk.Column = f.Columns[0]
	}
	if fk.ForeignColumn == "" && len(f.ForeignColumns) > 0 {
		fk.ForeignColumn = f.ForeignColumns[0]
	}
	return fk
}

// UnmarshalJSON implements json.Unmarshaler for ForeignKey.
func (fk *ForeignKey) UnmarshalJSON(data []byte) error {
	var fields foreignKeyFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return errorst.Wrap(err, "failed to unmarshal foreign key")
	}
	*fk = fields.resolve()
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ForeignKey.
func (fk *ForeignKey) UnmarshalYAML(value *yaml.Node) error {
	var fields foreignKeyFields
	if err := value.Decode(&fields); err != nil {
		return errorst.Wrap(err, "failed to unmarshal foreign key")
	}
	*fk = fields.resolve()
	return nil
}
