package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"equipment-loans/loans"
)

const menuText = `
==================================================
   EQUIPMENT LOAN SYSTEM
==================================================
1. List all items
2. List available items
3. Register loan
4. Return item
5. Full loan history
6. History of one item
7. Add item
8. List borrowers
9. Statistics
10. Add borrower
0. Exit
==================================================`

// menu is the interactive console. It only talks to the LoanManager and
// re-prompts on bad input instead of failing.
type menu struct {
	sc    *bufio.Scanner
	out   io.Writer
	mgr   *loans.LoanManager
	pause bool
}

func newMenu(in io.Reader, out io.Writer, mgr *loans.LoanManager) *menu {
	return &menu{sc: bufio.NewScanner(in), out: out, mgr: mgr}
}

func (m *menu) printf(format string, a ...any) { fmt.Fprintf(m.out, format, a...) }

// prompt prints label and reads one trimmed line. ok is false once input is exhausted.
func (m *menu) prompt(label string) (line string, ok bool) {
	m.printf("%s", label)
	if !m.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.sc.Text()), true
}

func (m *menu) run() {
	m.printf("Welcome to the Equipment Loan System!\n")

	for {
		m.printf("%s\n", menuText)
		choice, ok := m.prompt("Select an option (0-10): ")
		if !ok {
			return
		}
		opt, err := strconv.Atoi(choice)
		if err != nil {
			m.printf("Please enter a valid number.\n")
			continue
		}

		switch opt {
		case 0:
			m.printf("\nThanks for using the Equipment Loan System!\n")
			return
		case 1:
			printItems(m.out, "INVENTORY", m.mgr.Items(), "No items registered.")
		case 2:
			printItems(m.out, "AVAILABLE ITEMS", m.mgr.AvailableItems(), "No items available right now.")
		case 3:
			m.handleRegisterLoan()
		case 4:
			m.handleReturn()
		case 5:
			printFullHistory(m.out, m.mgr.FullHistory())
		case 6:
			m.handleItemHistory()
		case 7:
			m.handleAddItem()
		case 8:
			printBorrowers(m.out, m.mgr.Borrowers())
		case 9:
			printStats(m.out, m.mgr.Statistics())
		case 10:
			m.handleAddBorrower()
		default:
			m.printf("Invalid option. Choose a number from 0 to 10.\n")
			continue
		}

		if m.pause {
			if _, ok := m.prompt("\nPress Enter to continue..."); !ok {
				return
			}
		}
	}
}

func (m *menu) handleRegisterLoan() {
	m.printf("\n=== REGISTER LOAN ===\n")
	available := m.mgr.AvailableItems()
	printItems(m.out, "AVAILABLE ITEMS", available, "No items available right now.")
	if len(available) == 0 {
		return
	}

	itemName, ok := m.prompt("\nExact item name: ")
	if !ok {
		return
	}
	borrower, ok := m.prompt("Borrower name: ")
	if !ok {
		return
	}
	if itemName == "" || borrower == "" {
		m.printf("Both the item and the borrower name are required.\n")
		return
	}

	msg, err := m.mgr.RegisterLoan(itemName, borrower)
	m.report(msg, err)
}

func (m *menu) handleReturn() {
	m.printf("\n=== RETURN ITEM ===\n")
	lent := m.mgr.LentItems()
	if len(lent) == 0 {
		m.printf("No items are on loan right now.\n")
		return
	}
	m.printf("Items currently on loan:\n")
	for _, it := range lent {
		m.printf("  • %s\n", it)
	}

	itemName, ok := m.prompt("\nExact name of the item to return: ")
	if !ok {
		return
	}
	if itemName == "" {
		m.printf("The item name is required.\n")
		return
	}

	msg, _, err := m.mgr.ReturnItem(itemName)
	m.report(msg, err)
}

func (m *menu) handleItemHistory() {
	m.printf("\n=== HISTORY OF ONE ITEM ===\n")
	printItems(m.out, "INVENTORY", m.mgr.Items(), "No items registered.")

	itemName, ok := m.prompt("\nItem name: ")
	if !ok || itemName == "" {
		return
	}
	history, err := m.mgr.HistoryForItem(itemName)
	if err != nil {
		m.printf("%v\n", err)
		return
	}
	m.printf("\n=== HISTORY OF %s ===\n", strings.ToUpper(itemName))
	printLoans(m.out, "", history)
}

func (m *menu) handleAddItem() {
	m.printf("\n=== ADD ITEM ===\n")
	m.printf("Item categories:\n1. Computer\n2. Tablet\n")

	code, ok := m.prompt("Select the category (1-2): ")
	if !ok {
		return
	}
	cat, valid := loans.ParseCategory(code)
	if !valid {
		m.printf("Invalid category.\n")
		return
	}

	name, ok := m.prompt("Item name: ")
	if !ok {
		return
	}
	if name == "" {
		m.printf("The item name cannot be empty.\n")
		return
	}

	var it *loans.Item
	switch cat {
	case loans.CategoryComputer:
		os, _ := m.prompt(fmt.Sprintf("Operating system (%s): ", loans.DefaultOS))
		mem, _ := m.prompt(fmt.Sprintf("Memory (%s): ", loans.DefaultMemory))
		it = loans.NewComputer(name, os, mem)
	case loans.CategoryTablet:
		screen, _ := m.prompt(fmt.Sprintf("Screen size in inches (%s): ", loans.DefaultScreenSize))
		battery, _ := m.prompt(fmt.Sprintf("Battery (%s): ", loans.DefaultBattery))
		it = loans.NewTablet(name, screen, battery)
	}

	added, err := m.mgr.AddItem(it)
	switch {
	case err != nil:
		m.printf("Item added but not saved: %v\n", err)
	case added:
		m.printf("Item '%s' added.\n", name)
	default:
		m.printf("An item named '%s' already exists.\n", name)
	}
}

func (m *menu) handleAddBorrower() {
	m.printf("\n=== ADD BORROWER ===\n")
	name, ok := m.prompt("Name: ")
	if !ok {
		return
	}
	if name == "" {
		m.printf("The name cannot be empty.\n")
		return
	}
	contact, _ := m.prompt("Contact: ")
	role, _ := m.prompt("Role (Student/Professor/Admin) [Student]: ")
	if contact == "" {
		contact = m.mgr.ContactFor(name)
	}

	added, err := m.mgr.AddBorrower(loans.NewBorrower(name, contact, loans.ParseRole(role)))
	switch {
	case err != nil:
		m.printf("Borrower added but not saved: %v\n", err)
	case added:
		m.printf("Borrower '%s' added.\n", name)
	default:
		m.printf("A borrower named '%s' already exists.\n", name)
	}
}

func (m *menu) report(msg string, err error) {
	if err != nil {
		if msg != "" {
			m.printf("✅ %s (warning: %v)\n", msg, err)
			return
		}
		m.printf("❌ %v\n", err)
		return
	}
	m.printf("✅ %s\n", msg)
}
