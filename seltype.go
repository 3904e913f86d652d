/*
 * seltype.go, part of godplr.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dplr

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const deepmdHint = "Install DeepMD-kit in the Python environment, e.g. 'pip install deepmd-kit'"

//pyIntList renders ints the way Python's repr does, so the generated
//snippets compare cleanly against DeepMD's own lists.
func pyIntList(v []int) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

//SelTypeAssertion returns a shell command that asserts, through the
//DeepMD-kit inference API, that the selected types stored inside the
//model at modelPath are exactly selType. The command is only built
//here, never run: it is meant to be prepended to remotely executed
//simulation scripts, to fail fast on a model/parameter mismatch.
//pyCmd is the Python interpreter to use; if empty, "python" is used.
func SelTypeAssertion(selType []int, modelPath string, pyCmd string) string {
	if pyCmd == "" {
		pyCmd = "python"
	}
	return fmt.Sprintf(`%s -c "from deepmd.infer import DeepDipole;dp = DeepDipole('%s');assert%s==[t for t in dp.tselt]"`,
		pyCmd, modelPath, pyIntList(selType))
}

//SelTypeFromModel asks the DeepMD-kit inference API (through the Python
//interpreter pyCmd, "python" if empty) for the selected types stored in
//the model at modelPath. DeepMD-kit is an optional, Python-side
//dependency: if the interpreter or the package is missing, the error is
//a *MissingDepError carrying an installation hint.
func SelTypeFromModel(modelPath string, pyCmd string) ([]int, error) {
	if pyCmd == "" {
		pyCmd = "python"
	}
	if _, err := exec.LookPath(pyCmd); err != nil {
		return nil, &MissingDepError{Dep: pyCmd, Hint: deepmdHint, Err: err}
	}
	script := fmt.Sprintf(`from deepmd.infer import DeepDipole
dp = DeepDipole('%s')
print(" ".join(str(t) for t in dp.tselt))`, modelPath)
	out, err := exec.Command(pyCmd, "-c", script).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && strings.Contains(string(ee.Stderr), "ModuleNotFoundError") {
			return nil, &MissingDepError{Dep: "deepmd-kit", Hint: deepmdHint, Err: err}
		}
		return nil, fmt.Errorf("dplr.SelTypeFromModel: %s: %w", modelPath, err)
	}
	fields := strings.Fields(string(out))
	ret := make([]int, 0, len(fields))
	for _, f := range fields {
		t, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("dplr.SelTypeFromModel: unexpected output %q: %w", string(out), err)
		}
		ret = append(ret, t)
	}
	return ret, nil
}
