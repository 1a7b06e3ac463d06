// Package converter maps raw backend payloads onto directory entities.
// Everything here is a pure transform; no I/O and no fallback policy
// beyond per-field defaults.
package converter

import (
	"sort"
	"strconv"
	"strings"

	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/infrastructure/backend"
)

// DoctorFromAPI converts a raw backend doctor record to a directory
// Doctor, applying the field-level fallback chain for records the
// backend sends sparsely populated.
func DoctorFromAPI(raw backend.RawDoctor) entity.Doctor {
	specialty := raw.Speciality
	if specialty == "" {
		specialty = raw.Specialty
	}
	if specialty == "" {
		specialty = entity.DefaultSpecialty
	}

	rating := raw.Rating
	if rating == 0 {
		rating = 5.0
	}

	hospital := raw.Hospital
	if hospital == "" {
		hospital = entity.DefaultHospital
	}

	bio := raw.Bio
	if bio == "" {
		bio = entity.DefaultBio
	}

	photoURL := raw.PhotoURL
	if photoURL == "" {
		photoURL = entity.DefaultPhotoURL
	}

	tags := raw.Tags
	if len(tags) == 0 {
		tags = []string{specialty}
	}

	experience := raw.Experience
	if experience == 0 {
		experience = 1
	}

	return entity.Doctor{
		ID:             strconv.FormatInt(raw.ID, 10),
		Name:           raw.Name,
		Specialty:      specialty,
		Rating:         rating,
		ReviewCount:    raw.ReviewCount,
		Hospital:       hospital,
		Bio:            bio,
		PhotoURL:       photoURL,
		Tags:           tags,
		Experience:     experience,
		AvailableSlots: []entity.AvailableSlot{},
	}
}

// DoctorsFromAPI converts a slice of raw doctor records.
func DoctorsFromAPI(raws []backend.RawDoctor) []entity.Doctor {
	doctors := make([]entity.Doctor, len(raws))
	for i, raw := range raws {
		doctors[i] = DoctorFromAPI(raw)
	}
	return doctors
}

// AttachSlots distributes raw slots onto doctors as per-date, per-time
// availability. For every slot the ISO start timestamp is split into a
// date and an HH:MM time (seconds and zone truncated); within a date,
// duplicate time strings are dropped with first occurrence winning, so
// a colliding later slot's id is silently lost. Dates and times come
// out sorted ascending, which for these zero-padded formats is also
// chronological order.
func AttachSlots(doctors []entity.Doctor, slots []backend.RawSlot) []entity.Doctor {
	byDoctor := make(map[int64][]backend.RawSlot)
	for _, slot := range slots {
		byDoctor[slot.DoctorID] = append(byDoctor[slot.DoctorID], slot)
	}

	out := make([]entity.Doctor, len(doctors))
	for i, doc := range doctors {
		doc.AvailableSlots = groupSlots(byDoctor[doctorKey(doc.ID)])
		out[i] = doc
	}
	return out
}

func doctorKey(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func groupSlots(slots []backend.RawSlot) []entity.AvailableSlot {
	byDate := make(map[string][]entity.SlotTime)
	for _, slot := range slots {
		date, timeOfDay, ok := splitStartTime(slot.StartTime)
		if !ok {
			continue
		}
		if containsTime(byDate[date], timeOfDay) {
			continue
		}
		byDate[date] = append(byDate[date], entity.SlotTime{
			Time:   timeOfDay,
			SlotID: strconv.FormatInt(slot.ID, 10),
		})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	grouped := make([]entity.AvailableSlot, 0, len(dates))
	for _, date := range dates {
		times := byDate[date]
		sort.Slice(times, func(i, j int) bool {
			return times[i].Time < times[j].Time
		})
		grouped = append(grouped, entity.AvailableSlot{Date: date, Times: times})
	}
	return grouped
}

// splitStartTime cuts an ISO 8601 timestamp into its date and HH:MM
// parts without interpreting the zone.
func splitStartTime(startTime string) (date, timeOfDay string, ok bool) {
	date, rest, found := strings.Cut(startTime, "T")
	if !found || len(rest) < 5 {
		return "", "", false
	}
	return date, rest[:5], true
}

func containsTime(times []entity.SlotTime, timeOfDay string) bool {
	for _, t := range times {
		if t.Time == timeOfDay {
			return true
		}
	}
	return false
}
