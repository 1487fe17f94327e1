package extract

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExtract(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Extract Suite")
}

var _ = Describe("FindLabelValue", func() {
	var (
		lines []string
		label string
		value string
	)

	JustBeforeEach(func() {
		value = FindLabelValue(lines, label)
	})

	When("the label and value share a line", func() {
		BeforeEach(func() {
			lines = []string{"Summary", "Energy added 32.5 kWh", "Charge"}
			label = "energy added"
		})

		It("returns the inline remainder", func() {
			Expect(value).To(Equal("32.5 kWh"))
		})
	})

	When("the inline value is separated by a colon", func() {
		BeforeEach(func() {
			lines = []string{"Energy added: 32.5 kWh"}
			label = "energy added"
		})

		It("strips the colon", func() {
			Expect(value).To(Equal("32.5 kWh"))
		})
	})

	When("the label is on its own line", func() {
		BeforeEach(func() {
			lines = []string{"Time charging", "", "2 hrs 50 min"}
			label = "time charging"
		})

		It("returns the next non-blank line", func() {
			Expect(value).To(Equal("2 hrs 50 min"))
		})
	})

	When("the label line ends with a colon", func() {
		BeforeEach(func() {
			lines = []string{"Time charging:", "45 min"}
			label = "time charging"
		})

		It("still matches directly", func() {
			Expect(value).To(Equal("45 min"))
		})
	})

	When("OCR echoes the label before the value", func() {
		BeforeEach(func() {
			lines = []string{"Charge", "Charge", "+39% (102 mi)"}
			label = "charge"
		})

		It("skips the repeated label", func() {
			Expect(value).To(Equal("+39% (102 mi)"))
		})
	})

	When("prose merely starts with the label word", func() {
		BeforeEach(func() {
			lines = []string{"Charge your vehicle overnight to save"}
			label = "charge"
		})

		It("does not treat the prose as an inline value", func() {
			Expect(value).To(Equal(""))
		})
	})

	When("the inline value starts with a sign character", func() {
		BeforeEach(func() {
			lines = []string{"Charge +39% (102 mi)"}
			label = "charge"
		})

		It("accepts it", func() {
			Expect(value).To(Equal("+39% (102 mi)"))
		})
	})

	When("the label never appears", func() {
		BeforeEach(func() {
			lines = []string{"Summary", "Some station"}
			label = "energy added"
		})

		It("returns empty", func() {
			Expect(value).To(Equal(""))
		})
	})
})

var _ = Describe("ExtractSection", func() {
	var (
		lines   []string
		label   string
		section []string
	)

	JustBeforeEach(func() {
		section = ExtractSection(lines, label)
	})

	When("the label carries an inline value", func() {
		BeforeEach(func() {
			lines = []string{"Charge +39%", "(102 mi)", "Time charging", "2 hrs"}
			label = "charge"
		})

		It("uses the inline value as the first section line", func() {
			Expect(section).To(Equal([]string{"+39%", "(102 mi)"}))
		})
	})

	When("the section runs until the next boundary", func() {
		BeforeEach(func() {
			lines = []string{"Charge", "+39%", "", "(102 mi)", "Energy added", "32.5 kWh"}
			label = "charge"
		})

		It("collects non-blank lines and excludes the boundary", func() {
			Expect(section).To(Equal([]string{"+39%", "(102 mi)"}))
		})
	})

	When("the label is never found", func() {
		BeforeEach(func() {
			lines = []string{"Summary", "Some station"}
			label = "charge"
		})

		It("returns an empty section", func() {
			Expect(section).To(BeEmpty())
		})
	})
})
