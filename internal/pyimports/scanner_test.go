package pyimports

import (
	"reflect"
	"testing"
)

func TestScanFiltersStdlibAndPreservesOrder(t *testing.T) {
	code := `
import pandas as pd
from bs4 import BeautifulSoup
importlib.import_module('numpy')
import json
import os
`
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"pandas", "bs4", "numpy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}
}

func TestScanDeduplicatesRepeatedImports(t *testing.T) {
	code := "import requests\nimport requests\nfrom requests import Session\n"
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"requests"}) {
		t.Fatalf("Scan() = %v, want [requests]", got)
	}
}

func TestScanIgnoresImportsInsideStringsAndComments(t *testing.T) {
	code := "x = \"import numpy\"\n# import pandas\ny = 1\n"
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Scan() = %v, want empty", got)
	}
}

func TestScanIgnoresImportsInsideTripleQuotedStrings(t *testing.T) {
	code := "\"\"\"\nimport numpy\nfrom pandas import DataFrame\n\"\"\"\nimport requests\n"
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"requests"}) {
		t.Fatalf("Scan() = %v, want [requests]", got)
	}
}

func TestScanHandlesMultipleNamesOnOneImportLine(t *testing.T) {
	code := "import os, sys as s, requests\n"
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"requests"}) {
		t.Fatalf("Scan() = %v, want [requests]", got)
	}
}

func TestScanSkipsRelativeImports(t *testing.T) {
	code := "from . import helpers\nfrom .sibling import thing\nimport flask\n"
	got, err := Scan(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"flask"}) {
		t.Fatalf("Scan() = %v, want [flask]", got)
	}
}

func TestScanReturnsErrorOnUnterminatedTripleQuotedString(t *testing.T) {
	code := "\"\"\"\nimport numpy\n"
	_, err := Scan(code)
	if err == nil {
		t.Fatalf("expected an error for an unterminated triple-quoted string")
	}
}

func TestScanReturnsEmptySliceForStdlibOnlyCode(t *testing.T) {
	got, err := Scan("import os\nimport sys\nimport json\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Scan() = %v, want empty", got)
	}
}
