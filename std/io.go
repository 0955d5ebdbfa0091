package std

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PrintString writes message and a newline to stdout.
func PrintString(message string) { fmt.Println(message) }

// PrintNumber writes value and a newline to stdout.
func PrintNumber(value float64) { fmt.Println(value) }

// PrintBool writes value and a newline to stdout.
func PrintBool(value bool) { fmt.Println(value) }

// ReadLine reads one line from stdin, without the trailing newline. On
// read failure it returns what was read, which may be empty.
func ReadLine() string {
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
