// Package chstore persists solar records in ClickHouse.
//
// Records are grouped by session (one imported file or one bench run) and
// keep their row order. The writer uses the native ch-go columnar protocol;
// the reader uses clickhouse-go for struct scanning.
package chstore

import (
	"fmt"
	"strings"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
)

// BatchSize is the number of rows sent per INSERT block.
const BatchSize = 50000

// Options configures a ClickHouse connection.
type Options struct {
	Addr     string
	Database string
	Table    string
	Username string
	Password string
}

// OptionsFromConfig maps the shared configuration to connection options.
func OptionsFromConfig(cfg *common.Config) Options {
	return Options{
		Addr:     cfg.ClickHouseAddr(),
		Database: cfg.ClickHouseDatabase,
		Table:    cfg.ClickHouseTable,
		Username: cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
	}
}

// TableFQN returns database.table.
func (o Options) TableFQN() string {
	return fmt.Sprintf("%s.%s", o.Database, o.Table)
}

// measurementColumns lists the record columns in import order.
var measurementColumns = []string{
	"time",
	"solar_radiation",
	"v_mono", "v_poly",
	"i_mono", "i_poly",
	"p_mono", "p_poly",
	"eff_mono", "eff_poly",
	"rh",
	"panel_temp_mono", "panel_temp_poly",
	"ambient_temp",
	"wind_speed",
}

// insertColumns is the column list of every INSERT.
func insertColumns() []string {
	return append([]string{"session", "row_num"}, measurementColumns...)
}

// CreateDatabaseSQL returns the database DDL.
func CreateDatabaseSQL(database string) string {
	return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database)
}

// CreateTableSQL returns the measurement table DDL.
func CreateTableSQL(tableFQN string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", tableFQN)
	b.WriteString("    session String,\n")
	b.WriteString("    row_num UInt32,\n")
	b.WriteString("    time String,\n")
	for _, col := range measurementColumns[1:] {
		fmt.Fprintf(&b, "    %s Float64,\n", col)
	}
	b.WriteString("    inserted_at DateTime DEFAULT now()\n")
	b.WriteString(") ENGINE = MergeTree\nORDER BY (session, row_num)")
	return b.String()
}

// InsertSQL returns the INSERT statement for a native block.
func InsertSQL(tableFQN string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES", tableFQN, strings.Join(insertColumns(), ", "))
}

// ListSessionsSQL returns the per-session summary query, newest first.
func ListSessionsSQL(tableFQN string) string {
	return fmt.Sprintf(`SELECT session, count() AS rows, max(inserted_at) AS last_insert
FROM %s GROUP BY session ORDER BY last_insert DESC`, tableFQN)
}

// SelectSessionSQL returns the query loading one session in row order.
func SelectSessionSQL(tableFQN string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE session = ? ORDER BY row_num",
		strings.Join(measurementColumns, ", "), tableFQN)
}
