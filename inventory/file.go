package inventory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File reads a static inventory:
//
//	devices:
//	  - id: core-r1
//	    hostname: core-r1.example.net
//	    address: 192.0.2.1
//	    vendor: juniper
//	    metadata:
//	      ssh_port: "2222"
type File struct {
	path string
}

type inventoryFile struct {
	Devices []Entry `yaml:"devices"`
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Devices(ctx context.Context) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read inventory %s: %w", f.path, err)
	}
	return ParseFile(data)
}

// ParseFile decodes an inventory document. Entries without an id use their
// address; entries without an address or vendor are rejected.
func ParseFile(data []byte) ([]Entry, error) {
	var doc inventoryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}

	for i := range doc.Devices {
		e := &doc.Devices[i]
		if e.Address == "" {
			return nil, fmt.Errorf("inventory entry %d: address is required", i)
		}
		if e.Vendor == "" {
			return nil, fmt.Errorf("inventory entry %s: vendor is required", e.Address)
		}
		if e.InventoryID == "" {
			e.InventoryID = e.Address
		}
		if e.Hostname == "" {
			e.Hostname = e.Address
		}
	}
	return doc.Devices, nil
}
