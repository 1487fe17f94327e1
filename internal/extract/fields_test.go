package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FindDate", func() {
	It("parses a comma-separated date", func() {
		Expect(FindDate("Plugged in December 16th, 2025 at noon")).To(Equal("2025-12-16"))
	})

	It("parses a space-separated date", func() {
		Expect(FindDate("March 3rd 2024")).To(Equal("2024-03-03"))
	})

	It("coerces the Ist OCR artifact to the first of the month", func() {
		Expect(FindDate("December Ist, 2025")).To(Equal("2025-12-01"))
	})

	It("handles a day without an ordinal suffix", func() {
		Expect(FindDate("January 9, 2026")).To(Equal("2026-01-09"))
	})

	It("returns empty when no date is present", func() {
		Expect(FindDate("no date here")).To(Equal(""))
	})

	It("returns empty for an impossible day", func() {
		Expect(FindDate("February 31st, 2025")).To(Equal(""))
	})
})

var _ = Describe("FindTime", func() {
	It("finds a colon-separated time", func() {
		Expect(FindTime("Start 08:05 30%")).To(Equal("08:05"))
	})

	It("normalizes a period separator to a colon", func() {
		Expect(FindTime("ended at 8.05")).To(Equal("8:05"))
	})

	It("returns empty when no time is present", func() {
		Expect(FindTime("30%")).To(Equal(""))
	})
})

var _ = Describe("FindPercent", func() {
	It("captures digits before the percent sign", func() {
		Expect(FindPercent("+39% (102 mi)")).To(Equal("39"))
	})

	It("allows whitespace before the sign", func() {
		Expect(FindPercent("charged to 80 %")).To(Equal("80"))
	})
})

var _ = Describe("FindEnergy", func() {
	It("captures a decimal kWh figure", func() {
		Expect(FindEnergy("Energy added 32.5 kWh")).To(Equal("32.5"))
	})

	It("is case-insensitive", func() {
		Expect(FindEnergy("18 KWH")).To(Equal("18"))
	})
})

var _ = Describe("FindPower", func() {
	It("captures a kW figure", func() {
		Expect(FindPower("150 kW DC fast charger")).To(Equal("150"))
	})

	It("never matches inside kWh", func() {
		Expect(FindPower("Energy added 32.5 kWh")).To(Equal(""))
	})
})

var _ = Describe("FindCost", func() {
	It("returns the amount verbatim including the dollar sign", func() {
		Expect(FindCost("Total $1,234.56 charged")).To(Equal("$1,234.56"))
	})

	It("returns empty without a currency prefix", func() {
		Expect(FindCost("23.45")).To(Equal(""))
	})
})

var _ = Describe("FindMiles", func() {
	It("captures a signed miles delta", func() {
		Expect(FindMiles("+39% (+102 mi)")).To(Equal("102"))
	})

	It("captures an unsigned miles delta", func() {
		Expect(FindMiles("(33 mi)")).To(Equal("33"))
	})
})

var _ = Describe("DurationMinutes", func() {
	It("converts hours and minutes", func() {
		Expect(DurationMinutes("2 hrs 50 min")).To(Equal("170"))
	})

	It("converts hours alone", func() {
		Expect(DurationMinutes("1 hr")).To(Equal("60"))
	})

	It("converts minutes alone", func() {
		Expect(DurationMinutes("45 min")).To(Equal("45"))
	})

	It("returns empty for a zero total", func() {
		Expect(DurationMinutes("0 min")).To(Equal(""))
	})

	It("returns empty when neither unit appears", func() {
		Expect(DurationMinutes("a while")).To(Equal(""))
	})
})

var _ = Describe("Brand", func() {
	It("returns the leading token of the charger name", func() {
		Expect(Brand("Electrify America - Gilroy")).To(Equal("Electrify"))
	})

	It("splits on hyphens", func() {
		Expect(Brand("EVgo-Downtown")).To(Equal("EVgo"))
	})

	It("returns empty for an empty name", func() {
		Expect(Brand("")).To(Equal(""))
	})
})
