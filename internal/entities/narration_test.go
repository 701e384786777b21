package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma separated", "30418, 20005, 11062", []string{"30418", "20005", "11062"}},
		{"space separated", "30418 20005 11062", []string{"30418", "20005", "11062"}},
		{"mixed with padding", " 3 ,, 7  9,", []string{"3", "7", "9"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChain(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNarration_SavedID(t *testing.T) {
	n := Narration{Source: " Sahih Bukhari ", HadithNo: " 5"}

	assert.Equal(t, "Sahih Bukhari", n.Book())
	assert.Equal(t, "5", n.Number())
	assert.Equal(t, "Sahih Bukhari_5", n.SavedID())
}

func TestNarrator_Indices(t *testing.T) {
	n := Narrator{StudentsInds: "1, 2", TeachersInds: "3 4"}

	assert.Equal(t, []string{"1", "2"}, n.StudentIndices())
	assert.Equal(t, []string{"3", "4"}, n.TeacherIndices())
}
