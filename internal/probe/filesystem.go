package probe

import "os"

// probeFilesystem checks existence for every registered key file.
func (p *Prober) probeFilesystem(keyFiles map[string]string) map[string]bool {
	out := make(map[string]bool, len(keyFiles))
	for key, path := range keyFiles {
		_, err := os.Stat(path)
		out[key] = err == nil
	}
	return out
}
