package resume

const sampleResume = `Jane Doe
San Francisco, CA | jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe | github.com/janedoe

Summary
Backend engineer with eight years of experience building distributed systems in Go and Python.
Focused on reliability.

Skills
Go, Python, SQL, Docker, Kubernetes
Tools: Git, Terraform

Experience
Senior Software Engineer, Acme Corp Jan 2020 - Present
- Built APIs serving 10k requests per second
- Led migration to Kubernetes
Data Analyst | Globex Mar 2016 - Dec 2019
- Automated reporting with Pandas

Education
B.S. in Computer Science, Stanford University, 2012 - 2016

Certifications
AWS Certified Solutions Architect - Amazon Web Services, 2021

Projects
ResuMatch | Resume parser written in Go
- Extracts skills from PDF resumes
Tech: Go, Gemini

Publications
Parsing Resumes at Scale. Proceedings of NLP Workshop, 2021
- arXiv:2101.01234

Languages
English (Native), German (B2)`
