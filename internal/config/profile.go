package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const fallbackMessageFormat = "This information isn't available in %s's professional or personal profile."

// Profile describes whose portfolio is being answered for, plus the canned
// answers that bypass retrieval.
type Profile struct {
	Name     string   `yaml:"name"`
	Contact  Shortcut `yaml:"contact"`
	Employer Shortcut `yaml:"employer"`
	Fallback Fallback `yaml:"fallback"`
}

// Shortcut fires when the lowercased question contains any trigger.
type Shortcut struct {
	Triggers []string `yaml:"triggers"`
	Answer   string   `yaml:"answer"`
}

// Fallback replaces model hedging with one message.
type Fallback struct {
	Phrases []string `yaml:"phrases"`
	Message string   `yaml:"message"`
}

func DefaultProfile() Profile {
	return Profile{
		Name: "Mahitha",
		Contact: Shortcut{
			Triggers: []string{"contact", "linkedin", "email", "phone", "reach", "number"},
			Answer: "You can reach Mahitha at **(832)-387-5632**, " +
				"email: **mahithareddy921@gmail.com**, " +
				"or connect on [LinkedIn](https://www.linkedin.com/in/mahithardy/).",
		},
		Employer: Shortcut{
			Triggers: []string{"where is she now", "current job", "currently working", "where does she work now"},
			Answer: "Mahitha Reddy is currently working at **McKinsey & Co.** in Texas " +
				"as a **Software Engineer (Computer Systems Analyst)**.",
		},
		Fallback: Fallback{
			Phrases: []string{"i don't know.", "i don't have that information.", "not sure.", "i'm not sure."},
			Message: fmt.Sprintf(fallbackMessageFormat, "Mahitha"),
		},
	}
}

// LoadProfile reads a YAML profile. A missing file yields the default profile;
// fields left out of the file are taken from it.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultProfile(), nil
		}
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return p.withDefaults(), nil
}

func (p Profile) withDefaults() Profile {
	def := DefaultProfile()
	if p.Name == "" {
		p.Name = def.Name
	}
	if len(p.Contact.Triggers) == 0 {
		p.Contact.Triggers = def.Contact.Triggers
	}
	if p.Contact.Answer == "" {
		p.Contact.Answer = def.Contact.Answer
	}
	if len(p.Employer.Triggers) == 0 {
		p.Employer.Triggers = def.Employer.Triggers
	}
	if p.Employer.Answer == "" {
		p.Employer.Answer = def.Employer.Answer
	}
	if len(p.Fallback.Phrases) == 0 {
		p.Fallback.Phrases = def.Fallback.Phrases
	}
	if p.Fallback.Message == "" {
		p.Fallback.Message = fmt.Sprintf(fallbackMessageFormat, p.Name)
	}
	return p
}

// StarterProfile is the template the install wizard writes for a new owner.
// Answers hold placeholders meant to be edited by hand.
func StarterProfile(name string) Profile {
	def := DefaultProfile()
	return Profile{
		Name: name,
		Contact: Shortcut{
			Triggers: def.Contact.Triggers,
			Answer:   fmt.Sprintf("You can reach %s at **<phone>**, email: **<email>**.", name),
		},
		Employer: Shortcut{
			Triggers: def.Employer.Triggers,
			Answer:   fmt.Sprintf("%s is currently working at **<company>** as a **<role>**.", name),
		},
		Fallback: Fallback{
			Phrases: def.Fallback.Phrases,
			Message: fmt.Sprintf(fallbackMessageFormat, name),
		},
	}
}
