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

//go:build release

package paths

import (
	"os"
	"path/filepath"
)

const baseResourcePath = "hdmitx"

// the release version of getBasePath looks for and if necessary creates the
// config directory (and child directories) in the user's configuration
// directory.
func getBasePath(subPth string) (string, error) {
	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	pth := filepath.Join(cnf, baseResourcePath, subPth)
	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}

	return pth, nil
}
