package prompt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// CollectFiles asks for a glob pattern and expands it to a list of files.
// Matched folders are either ignored or have their direct contents included,
// per the user's choice. At least one file is required. The common file
// extension is returned alongside; files with no extension or mixed
// extensions need user confirmation and report an empty extension.
func (p *Prompter) CollectFiles(instructions string) ([]string, string, error) {
	for {
		pattern, err := p.Text(instructions)
		if err != nil {
			return nil, "", err
		}

		files, ext, err := p.expandPattern(pattern)
		if err != nil {
			if eris.Is(err, ErrQuit) {
				return nil, "", err
			}
			if _, werr := p.w.Write([]byte(err.Error() + "\n")); werr != nil {
				return nil, "", eris.Wrap(werr, "prompt: write")
			}
			continue
		}
		return files, ext, nil
	}
}

func (p *Prompter) expandPattern(pattern string) ([]string, string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, "", eris.Wrap(err, "prompt: bad file pattern")
	}

	var files, folders []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			folders = append(folders, m)
		} else {
			files = append(files, m)
		}
	}

	if len(folders) > 0 {
		choice, err := p.Membership(
			"This filepath includes the following folder(s): "+strings.Join(folders, ", ")+
				"\nWould you like to 'ignore' or 'include' folder contents?",
			[]string{"ignore", "include"},
		)
		if err != nil {
			return nil, "", err
		}
		if choice == "include" {
			for _, folder := range folders {
				contents, err := filepath.Glob(filepath.Join(folder, "*"))
				if err != nil {
					return nil, "", eris.Wrap(err, "prompt: expand folder")
				}
				for _, m := range contents {
					info, err := os.Stat(m)
					if err != nil || info.IsDir() {
						continue
					}
					files = append(files, m)
				}
			}
		}
	}

	if len(files) == 0 {
		return nil, "", eris.New("No files were specified.")
	}

	ext, err := p.commonExtension(files)
	if err != nil {
		return nil, "", err
	}
	return files, ext, nil
}

// commonExtension checks that every file shares one extension, confirming
// with the user before proceeding with missing or mixed extensions.
func (p *Prompter) commonExtension(files []string) (string, error) {
	var withExt []string
	for _, f := range files {
		if filepath.Ext(f) != "" {
			withExt = append(withExt, f)
		}
	}

	if len(withExt) < len(files) {
		ok, err := p.Confirm("Some files do not have a file extension. They may not all be the same type, which would cause problems.\nDo you want to proceed anyway?")
		if err != nil {
			return "", err
		}
		if !ok {
			return "", eris.New("No files were specified.")
		}
	}
	if len(withExt) == 0 {
		return "", nil
	}

	ext := strings.TrimPrefix(filepath.Ext(withExt[0]), ".")
	for _, f := range withExt[1:] {
		if strings.TrimPrefix(filepath.Ext(f), ".") != ext {
			ok, err := p.Confirm("Files have different file extensions. Mixing file types will cause problems.\nDo you want to proceed anyway?")
			if err != nil {
				return "", err
			}
			if !ok {
				return "", eris.New("No files were specified.")
			}
			return "", nil
		}
	}
	return ext, nil
}
