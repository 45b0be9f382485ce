package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySIC(t *testing.T) {
	tests := []struct {
		name        string
		codes       []string
		want        Classification
		wantReasons []string
	}{
		{"no codes", nil, ClassificationUnknown, nil},
		{"only junk codes", []string{"n/a", "-"}, ClassificationUnknown, nil},
		{"plain employer", []string{"62020"}, ClassificationEmployer, nil},
		{"division 78 prefix", []string{"78300"}, ClassificationAgency, []string{"sic_78300"}},
		{"any 78xxx code", []string{"78999"}, ClassificationAgency, []string{"sic_78999"}},
		{"mixed codes", []string{"62020", "78200"}, ClassificationAgency, []string{"sic_78200"}},
		{"punctuation stripped", []string{"78.10-1"}, ClassificationAgency, []string{"sic_78101"}},
		{"duplicate reasons collapse", []string{"78200", "78200"}, ClassificationAgency, []string{"sic_78200"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reasons := ClassifySIC(tt.codes)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReasons, reasons)
		})
	}
}
