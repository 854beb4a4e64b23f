package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParsePayslipName(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		expectedID   string
		expectedName string
	}{
		{
			name:         "single-word surname",
			filename:     "EMP001_John_Smith_SalarySlip_20251031.pdf",
			expectedID:   "EMP001",
			expectedName: "John Smith",
		},
		{
			name:         "three-part name",
			filename:     "EMP010_Maria_Garcia_Lopez_SalarySlip_20251031.pdf",
			expectedID:   "EMP010",
			expectedName: "Maria Garcia Lopez",
		},
		{
			name:         "unknown layout yields empty fields",
			filename:     "report.pdf",
			expectedID:   "",
			expectedName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := ParsePayslipName(tt.filename)
			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedName, name)
		})
	}
}

func TestList_NewestFirst(t *testing.T) {
	base := t.TempDir()
	library := NewPayslipLibrary(base, zap.NewNop())

	older := filepath.Join(base, "EMP001_John_Smith_SalarySlip_20250930.pdf")
	newer := filepath.Join(base, "EMP002_Sarah_Johnson_SalarySlip_20251031.pdf")
	require.NoError(t, os.WriteFile(older, []byte("pdf"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("pdf"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	slips, err := library.List()
	require.NoError(t, err)
	require.Len(t, slips, 2)

	assert.Equal(t, "EMP002_Sarah_Johnson_SalarySlip_20251031.pdf", slips[0].Filename)
	assert.Equal(t, "EMP002", slips[0].EmployeeID)
	assert.Equal(t, "Sarah Johnson", slips[0].EmployeeName)
	assert.Equal(t, "EMP001", slips[1].EmployeeID)
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	library := NewPayslipLibrary(base, zap.NewNop())

	name := "EMP001_John_Smith_SalarySlip_20251031.pdf"
	require.NoError(t, os.WriteFile(filepath.Join(base, name), []byte("pdf"), 0644))

	path, err := library.Resolve(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, name), path)
}

func TestResolve_Rejections(t *testing.T) {
	library := NewPayslipLibrary(t.TempDir(), zap.NewNop())

	tests := []struct {
		name     string
		filename string
	}{
		{name: "traversal attempt", filename: "../escape.pdf"},
		{name: "not a pdf", filename: "timesheet.xlsx"},
		{name: "missing file", filename: "EMP099_Nobody_SalarySlip_20251031.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := library.Resolve(tt.filename)
			assert.Error(t, err)
		})
	}
}

func TestDelete(t *testing.T) {
	base := t.TempDir()
	library := NewPayslipLibrary(base, zap.NewNop())

	name := "EMP001_John_Smith_SalarySlip_20251031.pdf"
	path := filepath.Join(base, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0644))

	require.NoError(t, library.Delete(name))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, library.Delete(name))
}
