package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverworld(t *testing.T) {
	lvl, err := Load("", "overworld")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.Width != 2000 || lvl.Height != 244 || lvl.KillPlane != 244 {
		t.Fatalf("bounds = %vx%v kill=%v", lvl.Width, lvl.Height, lvl.KillPlane)
	}
	if lvl.Spawn != (Point{X: 50, Y: 110}) {
		t.Fatalf("spawn = %+v", lvl.Spawn)
	}

	tests := []struct {
		typ string
		min int
	}{
		{EntityFloor, 2},
		{EntityGoomba, 1},
		{EntityCoin, 1},
		{EntityMushroom, 1},
		{EntityCloud, 1},
	}
	for _, tt := range tests {
		if got := lvl.Count(tt.typ); got < tt.min {
			t.Errorf("Count(%q) = %d, want >= %d", tt.typ, got, tt.min)
		}
	}

	first := lvl.Entities[0]
	if first.Type != EntityCloud || first.X != 0 || first.Y != 0 {
		t.Errorf("first entity = %+v, want cloud at origin", first)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantAny bool
	}{
		{
			name: "kill plane defaults to height",
			src:  "width: 100\nheight: 50\nentities:\n  - {type: floor, x: 0, y: 40}\n",
		},
		{
			name:    "no entities",
			src:     "width: 100\nheight: 50\n",
			wantErr: ErrEmptyLevel,
		},
		{
			name:    "zero width",
			src:     "width: 0\nheight: 50\nentities:\n  - {type: floor, x: 0, y: 40}\n",
			wantErr: ErrBadDimension,
		},
		{
			name:    "unknown type",
			src:     "width: 100\nheight: 50\nentities:\n  - {type: koopa, x: 0, y: 40}\n",
			wantAny: true,
		},
		{
			name:    "outside width",
			src:     "width: 100\nheight: 50\nentities:\n  - {type: coin, x: 140, y: 40}\n",
			wantAny: true,
		},
		{
			name:    "bad yaml",
			src:     "width: [",
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tt.src))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAny:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				if lvl.KillPlane != lvl.Height {
					t.Fatalf("KillPlane = %v, want %v", lvl.KillPlane, lvl.Height)
				}
			}
		})
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	src := "name: tiny\nwidth: 300\nheight: 100\nentities:\n  - {type: floor, x: 0, y: 90}\n"
	if err := os.WriteFile(filepath.Join(dir, "overworld.yaml"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := Load(dir, "levels/overworld.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.Name != "tiny" {
		t.Fatalf("Name = %q, want disk copy", lvl.Name)
	}

	if _, err := Load(dir, "missing"); err == nil {
		t.Fatal("expected error for missing level")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	found := false
	for _, n := range names {
		if n == "overworld" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names() = %v, missing overworld", names)
	}
}
