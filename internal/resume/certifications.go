package resume

// ExtractCertifications returns certifications that carry a date on the same
// line or on the line right after the name. Undated lines are ignored.
func ExtractCertifications(text string) []Certification {
	certs := []Certification{}
	lines := sectionLines(text, SectionCertifications)

	for i := 0; i < len(lines); i++ {
		line := stripBullet(lines[i])
		rest, date := cutDate(line)

		if date == "" {
			if i+1 >= len(lines) {
				continue
			}
			nextRest, nextDate := cutDate(stripBullet(lines[i+1]))
			if nextDate == "" {
				continue
			}
			// the next line is either a bare date or "Issuer, Date"
			name, issuer := splitPair(rest)
			if issuer == "" {
				issuer = nextRest
			}
			certs = append(certs, Certification{Name: name, Issuer: issuer, Date: nextDate})
			i++
			continue
		}

		if rest == "" {
			continue
		}

		name, issuer := splitPair(rest)
		certs = append(certs, Certification{Name: name, Issuer: issuer, Date: date})
	}

	return certs
}
