package entity

import (
	"fmt"
	"math/rand"
	"time"
)

// demoTimeOptions are the candidate times for generated availability.
var demoTimeOptions = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00",
	"14:00", "14:30", "15:00", "15:30", "16:00",
}

// GeneratePlaceholderSlots builds display-only availability for the 14
// days after now: Sundays are skipped, and each candidate time survives
// with ~70% probability to look organically booked-out. All slot ids
// carry the placeholder prefix.
func GeneratePlaceholderSlots(now time.Time, r *rand.Rand) []AvailableSlot {
	var slots []AvailableSlot

	for i := 1; i <= 14; i++ {
		day := now.AddDate(0, 0, i)
		if day.Weekday() == time.Sunday {
			continue
		}

		var times []SlotTime
		for idx, t := range demoTimeOptions {
			if r.Float64() > 0.3 {
				times = append(times, SlotTime{
					Time:   t,
					SlotID: fmt.Sprintf("%s%d_%d", PlaceholderIDPrefix, day.Unix(), idx),
				})
			}
		}
		if len(times) > 0 {
			slots = append(slots, AvailableSlot{
				Date:  day.Format("2006-01-02"),
				Times: times,
			})
		}
	}

	return slots
}

// DemoDoctors returns the built-in roster used when the backend is
// entirely unreachable, so the directory is never empty. Every id is
// placeholder-prefixed so downstream booking logic can tell these
// doctors' slots are not persistable.
func DemoDoctors(now time.Time, r *rand.Rand) []Doctor {
	roster := []Doctor{
		{
			ID:          "1",
			Name:        "Dr. Sarah Mitchell",
			Specialty:   "Cardiologist",
			Rating:      4.9,
			ReviewCount: 127,
			Hospital:    "City Heart Center",
			Bio:         "Dr. Sarah Mitchell is a board-certified cardiologist with over 15 years of experience in treating heart conditions. She specializes in preventive cardiology and heart failure management.",
			PhotoURL:    "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Heart Health", "Prevention", "ECG"},
			Experience:  15,
		},
		{
			ID:          "2",
			Name:        "Dr. Michael Chen",
			Specialty:   "Dermatologist",
			Rating:      4.8,
			ReviewCount: 98,
			Hospital:    "Skin & Beauty Clinic",
			Bio:         "Dr. Michael Chen is a renowned dermatologist known for his expertise in cosmetic dermatology and skin cancer treatment. He combines traditional methods with cutting-edge technology.",
			PhotoURL:    "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Skin Care", "Cosmetic", "Laser"},
			Experience:  12,
		},
		{
			ID:          "3",
			Name:        "Dr. Emily Rodriguez",
			Specialty:   "Pediatrician",
			Rating:      4.9,
			ReviewCount: 215,
			Hospital:    "Children's Wellness Center",
			Bio:         "Dr. Emily Rodriguez is a compassionate pediatrician dedicated to providing comprehensive care for children from infancy through adolescence.",
			PhotoURL:    "https://images.unsplash.com/photo-1594824476967-48c8b964273f?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Child Care", "Vaccinations", "Development"},
			Experience:  10,
		},
		{
			ID:          "4",
			Name:        "Dr. James Wilson",
			Specialty:   "Orthopedic Surgeon",
			Rating:      4.7,
			ReviewCount: 89,
			Hospital:    "Joint & Spine Institute",
			Bio:         "Dr. James Wilson is an orthopedic surgeon specializing in joint replacement and sports medicine. He has performed over 2,000 successful surgeries.",
			PhotoURL:    "https://images.unsplash.com/photo-1622253692010-333f2da6031d?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Joint Pain", "Sports Medicine", "Surgery"},
			Experience:  18,
		},
		{
			ID:          "5",
			Name:        "Dr. Lisa Thompson",
			Specialty:   "Neurologist",
			Rating:      4.8,
			ReviewCount: 156,
			Hospital:    "Brain & Spine Center",
			Bio:         "Dr. Lisa Thompson is a neurologist with expertise in headache disorders, epilepsy, and neurodegenerative diseases. She is known for her patient-centered approach.",
			PhotoURL:    "https://images.unsplash.com/photo-1651008376811-b90baee60c1f?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Headache", "Epilepsy", "Memory"},
			Experience:  14,
		},
		{
			ID:          "6",
			Name:        "Dr. Robert Kim",
			Specialty:   "General Practitioner",
			Rating:      4.6,
			ReviewCount: 312,
			Hospital:    "Family Health Clinic",
			Bio:         "Dr. Robert Kim is a family medicine physician who provides comprehensive primary care for patients of all ages. He believes in building long-term relationships with his patients.",
			PhotoURL:    "https://images.unsplash.com/photo-1537368910025-700350fe46c7?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Primary Care", "Checkups", "Chronic Care"},
			Experience:  20,
		},
		{
			ID:          "7",
			Name:        "Dr. Amanda Foster",
			Specialty:   "Psychiatrist",
			Rating:      4.9,
			ReviewCount: 178,
			Hospital:    "Mental Wellness Center",
			Bio:         "Dr. Amanda Foster is a psychiatrist specializing in anxiety, depression, and trauma-related disorders. She takes a holistic approach to mental health treatment.",
			PhotoURL:    "https://images.unsplash.com/photo-1614608682850-e0d6ed316d47?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Anxiety", "Depression", "Therapy"},
			Experience:  11,
		},
		{
			ID:          "8",
			Name:        "Dr. David Martinez",
			Specialty:   "Ophthalmologist",
			Rating:      4.7,
			ReviewCount: 94,
			Hospital:    "Vision Care Center",
			Bio:         "Dr. David Martinez is an ophthalmologist specializing in cataract surgery and LASIK. He has helped thousands of patients achieve better vision.",
			PhotoURL:    "https://images.unsplash.com/photo-1582750433449-648ed127bb54?w=400&h=400&fit=crop&crop=face",
			Tags:        []string{"Eye Care", "LASIK", "Cataract"},
			Experience:  16,
		},
	}

	for i := range roster {
		roster[i].ID = PlaceholderIDPrefix + roster[i].ID
		roster[i].AvailableSlots = GeneratePlaceholderSlots(now, r)
	}

	return roster
}

// Specialties is the canonical directory filter list, including the
// match-all sentinel.
var Specialties = []string{
	"All Specialties",
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"Orthopedic Surgeon",
	"Neurologist",
	"General Practitioner",
	"Psychiatrist",
	"Ophthalmologist",
	"Gynecologist",
	"Dentist",
}
