package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReconcileDetails", func() {
	var (
		lines   []string
		details Details
	)

	JustBeforeEach(func() {
		details = ReconcileDetails(lines)
	})

	When("the additional details header is absent", func() {
		BeforeEach(func() {
			lines = []string{"Summary", "Start 08:05 30%"}
		})

		It("returns an all-empty result", func() {
			Expect(details).To(Equal(Details{}))
		})
	})

	When("dates carry their times inline", func() {
		BeforeEach(func() {
			lines = []string{
				"Additional Details",
				"December Ist, 2025 08:05",
				"Start",
				"30%",
				"December 1st, 2025 10:55",
				"End",
				"69%",
			}
		})

		It("fills the start fields", func() {
			Expect(details.StartDate).To(Equal("2025-12-01"))
			Expect(details.StartTime).To(Equal("08:05"))
			Expect(details.StartPercent).To(Equal("30"))
		})

		It("fills the end fields", func() {
			Expect(details.EndDate).To(Equal("2025-12-01"))
			Expect(details.EndTime).To(Equal("10:55"))
			Expect(details.EndPercent).To(Equal("69"))
		})

		It("uses the start date as the session date", func() {
			Expect(details.Date()).To(Equal("2025-12-01"))
		})
	})

	When("OCR splits a date and its time onto separate lines", func() {
		BeforeEach(func() {
			lines = []string{
				"Additional Details",
				"December 16th, 2025",
				"18:40",
				"Start",
				"22%",
			}
		})

		It("recombines the pending time with the start marker", func() {
			Expect(details.StartDate).To(Equal("2025-12-16"))
			Expect(details.StartTime).To(Equal("18:40"))
			Expect(details.StartPercent).To(Equal("22"))
		})
	})

	When("the start line carries everything inline", func() {
		BeforeEach(func() {
			lines = []string{
				"Additional Details",
				"December Ist, 2025",
				"Start 08:05 30%",
			}
		})

		It("scans the marker line itself for time and percentage", func() {
			Expect(details.StartDate).To(Equal("2025-12-01"))
			Expect(details.StartTime).To(Equal("08:05"))
			Expect(details.StartPercent).To(Equal("30"))
		})
	})

	When("a start marker appears twice", func() {
		BeforeEach(func() {
			lines = []string{
				"Additional Details",
				"January 5th, 2026 09:00",
				"Start",
				"40%",
				"January 6th, 2026 21:30",
				"Start",
				"55%",
			}
		})

		It("keeps the first values", func() {
			Expect(details.StartDate).To(Equal("2026-01-05"))
			Expect(details.StartTime).To(Equal("09:00"))
			Expect(details.StartPercent).To(Equal("40"))
		})
	})

	When("the end marker has no pending time", func() {
		BeforeEach(func() {
			lines = []string{
				"Additional Details",
				"February 2nd, 2026 07:15",
				"Start",
				"18%",
				"End",
				"11:45",
				"80%",
			}
		})

		It("scans forward for the next time and percentage", func() {
			Expect(details.EndDate).To(Equal("2026-02-02"))
			Expect(details.EndTime).To(Equal("11:45"))
			Expect(details.EndPercent).To(Equal("80"))
		})
	})
})
