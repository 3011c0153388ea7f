package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

func strPtr(s string) *string { return &s }

func sampleRows() []*employee.Employee {
	return []*employee.Employee{
		{Source: employee.SourceRemote, ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		{Source: employee.SourceLocal, ID: 11, Name: "Jane Doe", Email: "jane.doe@company.com",
			Designation: strPtr("Engineer"), Location: strPtr("NYC"), Salary: strPtr("1000")},
	}
}

func TestRenderDashboard_Views(t *testing.T) {
	t.Parallel()

	result := &employee.ListEmployeesResult{
		Employees: sampleRows(),
		Remote:    employee.RemoteState{Status: employee.RemoteReady},
	}

	for _, view := range []string{ViewCard, ViewList, ViewTable} {
		view := view
		t.Run(view, func(t *testing.T) {
			t.Parallel()

			out := renderDashboard(result, view)
			for _, want := range []string{"Leanne Graham", "Sincere@april.biz", "Jane Doe", "Engineer", "NYC"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
			if strings.Contains(out, "Failed to fetch employees") {
				t.Errorf("ready dashboard must not show fetch error")
			}
		})
	}
}

func TestRenderTable_MissingFieldsShowPlaceholder(t *testing.T) {
	t.Parallel()

	out := renderTable(sampleRows()[:1])
	if !strings.Contains(out, missingValue) {
		t.Fatalf("expected placeholder for remote optional fields:\n%s", out)
	}
	if !strings.Contains(out, "SALARY") {
		t.Fatalf("expected header row:\n%s", out)
	}
}

func TestRenderDashboard_Empty(t *testing.T) {
	t.Parallel()

	out := renderDashboard(&employee.ListEmployeesResult{
		Remote: employee.RemoteState{Status: employee.RemoteReady},
	}, ViewCard)
	if !strings.Contains(out, "No employees found") {
		t.Fatalf("expected empty message:\n%s", out)
	}
}

func TestRenderDashboard_RemoteErrorKeepsLocalRows(t *testing.T) {
	t.Parallel()

	out := renderDashboard(&employee.ListEmployeesResult{
		Employees: sampleRows()[1:],
		Remote:    employee.RemoteState{Status: employee.RemoteError, Err: fmt.Errorf("%w: boom", employee.ErrFetch)},
	}, ViewList)
	if !strings.Contains(out, "Failed to fetch employees") {
		t.Fatalf("expected fetch error message:\n%s", out)
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Fatalf("expected local row:\n%s", out)
	}
}

func TestRenderValidation(t *testing.T) {
	t.Parallel()

	out := renderValidation(employee.Validate(employee.Input{Name: "J", Designation: "Eng", Location: "NYC", Salary: "5000"}))
	if !strings.Contains(out, "Name must be at least 2 characters") {
		t.Fatalf("unexpected validation output:\n%s", out)
	}
}

func TestRenderAdded(t *testing.T) {
	t.Parallel()

	out := renderAdded(sampleRows()[1])
	if !strings.Contains(out, `Employee "Jane Doe" added successfully!`) {
		t.Fatalf("unexpected message: %s", out)
	}
}
