package bronze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/medallion/core"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		desc core.SourceDescriptor
		want string
	}{
		{
			"spaces collapsed and lower-cased",
			core.SourceDescriptor{Filename: "Q1 Report.csv", Department: "Sales"},
			"sales_q1_report_bronze.parquet",
		},
		{
			"hyphen and dot runs",
			core.SourceDescriptor{Filename: "user-data.v2.final.json", Department: "Customer Management"},
			"customer_management_user_data_v2_final_bronze.parquet",
		},
		{
			"mixed separator run collapses to one underscore",
			core.SourceDescriptor{Filename: "a - b.xlsx", Department: "Ops"},
			"ops_a_b_bronze.parquet",
		},
		{
			"no extension",
			core.SourceDescriptor{Filename: "README", Department: "Legal"},
			"legal_readme_bronze.parquet",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.desc))
		})
	}
}

func TestOutputName_Deterministic(t *testing.T) {
	desc := core.SourceDescriptor{Filename: "Q1 Report.csv", Department: "Sales"}
	assert.Equal(t, OutputName(desc), OutputName(desc))
}
