// This file is part of hdmitx.
//
// hdmitx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmitx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmitx.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the separator between the key and the value on each line of the file.
const keySep = " :: "

// NoPrefsFile is returned by Load() when the preferences file does not exist.
var NoPrefsFile = errors.New("prefs: no prefs file")

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]Pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}, nil
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	var s strings.Builder
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// sorted list of keys. the critical section should be held.
func (dsk *Disk) keys() []string {
	k := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// Add preference value to list of values to store/load from Disk. If there is
// a matching value on the command line stack then the value is set to that
// immediately.
func (dsk *Disk) Add(key string, p Pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, keySep) || strings.TrimSpace(key) != key || key == "" {
		return fmt.Errorf("prefs: illegal key %q", key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}

	return nil
}

// Reset all entries to their zero value.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

// read the preferences file into a key/value map. returns NoPrefsFile if the
// file does not exist.
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NoPrefsFile
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	data := make(map[string]string)

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanLines)

	// first line must be the warning boilerplate
	if !scanner.Scan() {
		return data, nil
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		spt := strings.SplitN(scanner.Text(), keySep, 2)
		if len(spt) != 2 {
			continue
		}
		data[spt[0]] = spt[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return data, nil
}

// Save current preference values to disk. Entries in the file that are not
// part of this Disk are preserved.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	data, err := dsk.read()
	if err != nil {
		if !errors.Is(err, NoPrefsFile) {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s strings.Builder
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, data[k]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFirstUse is true and the file
// does not exist then the current values are saved and no error is returned.
func (dsk *Disk) Load(saveOnFirstUse bool) error {
	dsk.crit.Lock()
	data, err := dsk.read()
	if err != nil {
		dsk.crit.Unlock()
		if errors.Is(err, NoPrefsFile) && saveOnFirstUse {
			return dsk.Save()
		}
		return err
	}
	defer dsk.crit.Unlock()

	for k, v := range data {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}
