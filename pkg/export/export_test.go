package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

func testRays(t *testing.T) []*core.Ray {
	t.Helper()
	a, err := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, 1)); err != nil {
		t.Fatal(err)
	}

	b, err := core.NewRay(core.NewVec3(1.5, -2, 0), core.NewVec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	b.Terminate()
	return []*core.Ray{a, b}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testRays(t)); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	expected := "ray,vertex,x,y,z,terminated\n" +
		"0,0,0,0,0,false\n" +
		"0,1,0,0,10,false\n" +
		"1,0,1.5,-2,0,true\n"
	if buf.String() != expected {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), expected)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testRays(t)); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var paths []RayPath
	if err := json.Unmarshal(buf.Bytes(), &paths); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	if len(paths[0].Vertices) != 2 || paths[0].Vertices[1] != [3]float64{0, 0, 10} || paths[0].Terminated {
		t.Errorf("Unexpected first path: %+v", paths[0])
	}
	if !paths[1].Terminated {
		t.Error("Second path should be terminated")
	}
	if !strings.Contains(buf.String(), `"vertices":[[1.5,-2,0]]`) {
		t.Errorf("Unexpected encoding: %s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"json", FormatJSON, false},
		{"png", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFormat(tc.name)
			if (err != nil) != tc.wantErr || got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tc.name, got, err)
			}
		})
	}
}

func TestWrite_DispatchesByFormat(t *testing.T) {
	var csvBuf, jsonBuf bytes.Buffer
	if err := Write(&csvBuf, FormatCSV, testRays(t)); err != nil {
		t.Fatal(err)
	}
	if err := Write(&jsonBuf, FormatJSON, testRays(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(csvBuf.String(), "ray,vertex") || !strings.HasPrefix(jsonBuf.String(), "[") {
		t.Errorf("Unexpected output: %q / %q", csvBuf.String(), jsonBuf.String())
	}
	if err := Write(&csvBuf, Format("xml"), nil); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
