/*
 * coopkernel - Shutdown sequence.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package shutdown issues the fixed sequence of legacy port writes that
// ask whatever hypervisor is hosting the machine to power it off, and
// falls back to an unrecoverable halt if none of them are honored.
package shutdown

import "github.com/rcornwell/coopkernel/internal/hwport"

const (
	portQEMU           = 0x604
	portBochsOldQEMU   = 0xB004
	portVirtualBoxACPI = 0x4004

	valueQEMU  = 0x2000
	valueBochs = 0x2000
	valueVBox  = 0x3400
)

// Sequence writes the three shutdown-request ports in order, then
// halts. A real hypervisor would have already terminated the process
// by the time the second or third write runs; the simulated port set
// simply records all of them and Halted reports true at the end either
// way, matching the spec's "halt is the unconditional last step".
func Sequence(ports *hwport.ShutdownPorts) {
	ports.Write16(portQEMU, valueQEMU)
	ports.Write16(portBochsOldQEMU, valueBochs)
	ports.Write16(portVirtualBoxACPI, valueVBox)
	ports.Halt()
}
