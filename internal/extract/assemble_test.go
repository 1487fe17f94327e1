package extract

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var fordPassText = strings.Join([]string{
	"FordPass",
	"Summary",
	"Electrify America - Gilroy",
	"8300 Arroyo Cir, Gilroy, CA",
	"Charge",
	"+39% (102 mi)",
	"Time charging",
	"2 hrs 50 min",
	"Energy added",
	"32.5 kWh",
	"150 kW charger",
	"Total $23.45",
	"Additional Details",
	"December Ist, 2025 08:05",
	"Start",
	"30%",
	"December 1st, 2025 10:55",
	"End",
	"69%",
}, "\n")

var _ = Describe("Assemble", func() {
	var (
		text   string
		layout Layout
		record Record
	)

	BeforeEach(func() {
		text = fordPassText
		layout = Layout{IncludeKW: true}
	})

	JustBeforeEach(func() {
		record = Assemble(text, layout)
	})

	When("parsing a complete screenshot", func() {
		It("extracts the charger name and location from the summary block", func() {
			Expect(record.ChargerName).To(Equal("Electrify America - Gilroy"))
			Expect(record.ChargerLocation).To(Equal("8300 Arroyo Cir, Gilroy, CA"))
		})

		It("converts the charging time to minutes", func() {
			Expect(record.DurationMinutes).To(Equal("170"))
		})

		It("extracts the energy added", func() {
			Expect(record.KWHAdded).To(Equal("32.5"))
		})

		It("extracts the charge delta and miles from the charge section", func() {
			Expect(record.ChargePercent).To(Equal("39"))
			Expect(record.ChargeMiles).To(Equal("102"))
		})

		It("extracts the charger power rating", func() {
			Expect(record.ChargerKWRating).To(Equal("150"))
		})

		It("extracts the cost verbatim", func() {
			Expect(record.Cost).To(Equal("$23.45"))
		})

		It("fills the session date and start/end metadata", func() {
			Expect(record.Date).To(Equal("2025-12-01"))
			Expect(record.StartTime).To(Equal("08:05"))
			Expect(record.EndTime).To(Equal("10:55"))
			Expect(record.StartPercent).To(Equal("30"))
			Expect(record.EndPercent).To(Equal("69"))
		})

		It("derives the brand from the charger name", func() {
			Expect(record.ChargerBrand).To(Equal("Electrify"))
		})

		It("is idempotent over identical text", func() {
			Expect(Assemble(text, layout)).To(Equal(record))
		})
	})

	When("the power rating is excluded by the layout", func() {
		BeforeEach(func() {
			layout = Layout{}
		})

		It("leaves the kW rating empty", func() {
			Expect(record.ChargerKWRating).To(Equal(""))
		})
	})

	When("the summary block has no name", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Charge details",
				"EVgo Downtown Garage",
				"12 Center St, Springfield",
				"Charge",
				"+10% (24 mi)",
			}, "\n")
		})

		It("falls back to the charge details block", func() {
			Expect(record.ChargerName).To(Equal("EVgo Downtown Garage"))
			Expect(record.ChargerLocation).To(Equal("12 Center St, Springfield"))
		})
	})

	When("the name block spans several lines", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Summary",
				"ChargePoint Station",
				"City Hall Lot 2",
				"450 Main St, Springfield",
				"Energy added",
				"18.2 kWh",
			}, "\n")
			layout = Layout{JoinedName: true}
		})

		It("joins all lines but the last into the name", func() {
			Expect(record.ChargerName).To(Equal("ChargePoint Station City Hall Lot 2"))
			Expect(record.ChargerLocation).To(Equal("450 Main St, Springfield"))
		})
	})

	When("the charge section misses a sub-field", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Summary",
				"EVgo Downtown",
				"12 Center St",
				"Charge +18%",
				"Energy added",
				"9.1 kWh (44 mi) added",
				"Additional Details",
				"Start 09:00 50%",
			}, "\n")
			layout = Layout{}
		})

		It("falls back to a text-wide scan bounded by the details block", func() {
			Expect(record.ChargePercent).To(Equal("18"))
			Expect(record.ChargeMiles).To(Equal("44"))
		})
	})

	When("the end percentage contradicts the start and delta", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Summary",
				"EVgo Downtown",
				"12 Center St",
				"Charge +5% (12 mi)",
				"Additional Details",
				"March 10th, 2026 14:00",
				"Start",
				"65%",
				"March 10th, 2026 14:45",
				"End",
				"10%",
			}, "\n")
			layout = Layout{}
		})

		It("repairs the end percentage with a fixed offset correction", func() {
			Expect(record.StartPercent).To(Equal("65"))
			Expect(record.ChargePercent).To(Equal("5"))
			Expect(record.EndPercent).To(Equal("70"))
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = ""
			layout = Layout{}
		})

		It("yields a fully empty record rather than an error", func() {
			Expect(record).To(Equal(Record{}))
		})
	})
})

var _ = Describe("repairEndPercent", func() {
	It("leaves consistent values alone", func() {
		Expect(repairEndPercent("30", "39", "69")).To(Equal("69"))
	})

	It("tolerates disagreement under ten points", func() {
		Expect(repairEndPercent("30", "39", "65")).To(Equal("65"))
	})

	It("leaves the value alone when no offset reconciles", func() {
		Expect(repairEndPercent("10", "15", "99")).To(Equal("99"))
	})

	It("never corrects outside the valid range", func() {
		// 90 + 40 would reconcile 80+50 only if it stayed within 0..100.
		Expect(repairEndPercent("80", "50", "90")).To(Equal("90"))
	})

	It("ignores rows with a missing component", func() {
		Expect(repairEndPercent("", "39", "69")).To(Equal("69"))
	})
})
