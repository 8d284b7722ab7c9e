// SPDX-License-Identifier: Unlicense OR MIT

package ipc

import "errors"

var errNameTaken = errors.New("ipc: well-known bus name already owned and not replaceable")
