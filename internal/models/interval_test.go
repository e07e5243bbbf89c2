package models

import "testing"

func TestInterval_String(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want string
	}{
		{"Daily", IntervalDaily, "Daily"},
		{"Weekly", IntervalWeekly, "Weekly"},
		{"Monthly", IntervalMonthly, "Monthly"},
		{"Yearly", IntervalYearly, "Yearly"},
		{"Unknown", Interval(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.String(); got != tt.want {
				t.Errorf("Interval.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterval_Next(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want Interval
	}{
		{"Daily -> Weekly", IntervalDaily, IntervalWeekly},
		{"Weekly -> Monthly", IntervalWeekly, IntervalMonthly},
		{"Monthly -> Yearly", IntervalMonthly, IntervalYearly},
		{"Yearly -> Daily", IntervalYearly, IntervalDaily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.Next(); got != tt.want {
				t.Errorf("Interval.Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in   string
		want Interval
	}{
		{"daily", IntervalDaily},
		{"weekly", IntervalWeekly},
		{"monthly", IntervalMonthly},
		{"yearly", IntervalYearly},
		{"bogus", IntervalDaily},
		{"", IntervalDaily},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseInterval(tt.in); got != tt.want {
				t.Errorf("ParseInterval(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
