// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/danielhkuo/party-vote/models"
)

func TestCSV(t *testing.T) {
	tbl := models.NewTable(models.TableDedications)
	tbl.Rows = append(tbl.Rows,
		models.Row{"Marta", "¡Feliz cumple!"},
		models.Row{"Anonymous", "línea uno\n\"línea\" dos, con coma"},
	)

	out, err := CSV(tbl)
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Nombre" || records[0][1] != "Mensaje" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[2][1] != "línea uno\n\"línea\" dos, con coma" {
		t.Errorf("message not preserved: %q", records[2][1])
	}
}

func TestCSV_EmptyTable(t *testing.T) {
	out, err := CSV(models.Table{Name: models.TableVotes})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "Artista,Puntos,Hora\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestExportable(t *testing.T) {
	if !Exportable(models.TableVotes) || !Exportable(models.TableDedications) {
		t.Error("known tables should be exportable")
	}
	if Exportable("sheet") {
		t.Error("unknown table should not be exportable")
	}
	if Filename(models.TableVotes) != "votos.csv" {
		t.Errorf("unexpected filename %s", Filename(models.TableVotes))
	}
}
