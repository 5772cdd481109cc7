package config

import (
	"testing"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{schedule: "*/5 * * * *"},
		{schedule: "1 0 * * *"},
		{schedule: "0 9 * * MON-FRI"},
		{schedule: "", wantErr: true},
		{schedule: "every five minutes", wantErr: true},
		{schedule: "* * * *", wantErr: true},
		{schedule: "0 */5 * * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		tz      string
		wantErr bool
	}{
		{tz: "UTC"},
		{tz: "Asia/Tokyo"},
		{tz: "", wantErr: true},
		{tz: "Mars/Olympus_Mons", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			err := ValidateTimezone(tt.tz)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimezone(%q) error = %v, wantErr %v", tt.tz, err, tt.wantErr)
			}
		})
	}
}
