package loans

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Inventory is the YAML document accepted by the importer:
//
//	items:
//	  - name: Laptop-003
//	    category: computer
//	    os: Linux
//	    memory: 32GB
//	  - name: iPad-002
//	    category: tablet
//	    screen_size: "11"
//	    battery: 9000mAh
//	borrowers:
//	  - name: Ana Ruiz
//	    contact: ana@email.com
//	    role: professor
type Inventory struct {
	Items     []InventoryItem     `yaml:"items"`
	Borrowers []InventoryBorrower `yaml:"borrowers"`
}

type InventoryItem struct {
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	OS         string `yaml:"os"`
	Memory     string `yaml:"memory"`
	ScreenSize string `yaml:"screen_size"`
	Battery    string `yaml:"battery"`
}

type InventoryBorrower struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact"`
	Role    string `yaml:"role"`
}

// ImportReport counts what an import did. Skipped holds one reason per entry
// that was not added.
type ImportReport struct {
	ItemsAdded     int
	BorrowersAdded int
	Skipped        []string
}

func (r *ImportReport) merge(o ImportReport) {
	r.ItemsAdded += o.ItemsAdded
	r.BorrowersAdded += o.BorrowersAdded
	r.Skipped = append(r.Skipped, o.Skipped...)
}

// DecodeInventory reads every YAML document in r into one Inventory.
func DecodeInventory(r io.Reader) (*Inventory, error) {
	var inv Inventory
	dec := yaml.NewDecoder(r)
	for {
		var doc Inventory
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode inventory: %w", err)
		}
		inv.Items = append(inv.Items, doc.Items...)
		inv.Borrowers = append(inv.Borrowers, doc.Borrowers...)
	}
	return &inv, nil
}

// Item builds the catalog item described by the entry.
func (e InventoryItem) Item() (*Item, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, errors.New("item without a name")
	}
	cat, ok := ParseCategory(e.Category)
	if !ok {
		return nil, fmt.Errorf("item %q: unknown category %q", name, e.Category)
	}
	if cat == CategoryTablet {
		return NewTablet(name, e.ScreenSize, e.Battery), nil
	}
	return NewComputer(name, e.OS, e.Memory), nil
}

// ApplyTo adds the inventory to c. Existing names are never overwritten.
func (inv *Inventory) ApplyTo(c *Catalog) ImportReport {
	var rep ImportReport
	for _, e := range inv.Items {
		it, err := e.Item()
		if err != nil {
			rep.Skipped = append(rep.Skipped, err.Error())
			continue
		}
		if !c.AddItem(it) {
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("item %q already exists", it.Name()))
			continue
		}
		rep.ItemsAdded++
	}
	for _, e := range inv.Borrowers {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			rep.Skipped = append(rep.Skipped, "borrower without a name")
			continue
		}
		contact := strings.TrimSpace(e.Contact)
		if contact == "" {
			contact = c.ContactFor(name)
		}
		if !c.AddBorrower(NewBorrower(name, contact, ParseRole(e.Role))) {
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("borrower %q already exists", name))
			continue
		}
		rep.BorrowersAdded++
	}
	return rep
}

// ExpandPatterns resolves glob patterns (with ** support) to file paths.
// A pattern that matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// ImportFiles decodes each file and applies it to c in order.
func ImportFiles(c *Catalog, files []string) (ImportReport, error) {
	var total ImportReport
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return total, err
		}
		inv, err := DecodeInventory(f)
		f.Close()
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
		total.merge(inv.ApplyTo(c))
	}
	return total, nil
}
