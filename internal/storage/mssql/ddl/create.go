package ddl

import (
	"fmt"
	"strings"

	gddl "hrpipe/internal/ddl"
)

// Dialect renders bracket-quoted identifiers. T-SQL has no CREATE TABLE IF
// NOT EXISTS, so BuildCreateTableSQL adds an OBJECT_ID guard instead.
var Dialect = gddl.Dialect{Name: "mssql ddl", Quote: quoteIdent}

// BuildCreateTableSQL returns a T-SQL script that creates the table if it
// does not already exist:
//
//	IF OBJECT_ID(N'[dbo].[employees]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [dbo].[employees] (
//	    [id] BIGINT,
//	    ...
//	  );
//	END;
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	create, err := gddl.Render(t, Dialect)
	if err != nil {
		return "", err
	}
	lines := strings.Split(create, "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n%s\nEND;",
		quoteFQN(strings.TrimSpace(t.FQN)),
		strings.Join(lines, "\n"),
	), nil
}

// quoteIdent brackets a single identifier segment, escaping closing
// brackets: weird]id -> [weird]]id].
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// quoteFQN quotes a possibly schema-qualified table name: dbo.employees ->
// [dbo].[employees].
func quoteFQN(fqn string) string { return Dialect.QuoteFQN(fqn) }
