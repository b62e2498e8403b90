// Package terminal is the console surface of the machine: menu loops, prompt
// handling and plan confirmation. It owns no business rules; everything flows
// through the services coordinator.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nullvectorcodes/atm-machine/internal/core"
	"github.com/nullvectorcodes/atm-machine/internal/services"
)

const separator = "--------------------------------------------------"

// Session is one interactive run of the terminal, blocking on the given
// input. Single user at a time.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	svc      *services.Service
	adminPIN int
}

func New(svc *services.Service, adminPIN int, in io.Reader, out io.Writer) *Session {
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		svc:      svc,
		adminPIN: adminPIN,
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) line() {
	fmt.Fprintln(s.out, separator)
}

// promptInt keeps asking until the user types a single integer. io.EOF means
// the input closed and the session should unwind.
func (s *Session) promptInt(prompt string) (int64, error) {
	for {
		s.printf("%s", prompt)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		text := strings.TrimSpace(s.in.Text())
		if text == "" {
			s.printf("Empty input. Try again.\n")
			continue
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			s.printf("Invalid integer. Try again.\n")
			continue
		}
		return v, nil
	}
}

// Run drives the main menu until the user exits or input closes.
func (s *Session) Run(ctx context.Context) error {
	s.printf("Welcome to the ATM Withdrawal System\n")
	for {
		s.line()
		s.printf("Main Menu:\n1. User Login\n2. Admin Menu\n3. Exit\n")
		choice, err := s.promptInt("Enter choice: ")
		if err != nil {
			return s.finish(err)
		}
		switch choice {
		case 1:
			if err := s.login(ctx); err != nil {
				return s.finish(err)
			}
		case 2:
			if err := s.adminMenu(ctx); err != nil {
				return s.finish(err)
			}
		case 3:
			s.printf("Exiting system. Goodbye!\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

// finish swallows a clean EOF so a closed input ends the session quietly.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) login(ctx context.Context) error {
	s.line()
	number, err := s.promptInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	if _, err := s.svc.Ledger().Find(number); err != nil {
		s.printf("Account not found.\n")
		return nil
	}

	for {
		pin, err := s.promptInt("Enter PIN: ")
		if err != nil {
			return err
		}
		account, err := s.svc.Ledger().Authenticate(ctx, number, int(pin))
		switch {
		case err == nil:
			s.printf("Login successful. Welcome, %s!\n", account.Name)
			return s.userMenu(ctx, account)
		case errors.Is(err, core.ErrAccountLocked):
			s.printf("Account is locked due to multiple failed login attempts. Contact admin.\n")
			return nil
		case errors.Is(err, core.ErrWrongPIN):
			s.printf("Incorrect PIN. Attempts remaining: %d\n", s.svc.Ledger().AttemptsLeft(number))
		default:
			s.printf("Account not found.\n")
			return nil
		}
	}
}

func (s *Session) userMenu(ctx context.Context, account *core.Account) error {
	for {
		s.line()
		s.printf("1. Balance Inquiry\n2. Cash Withdrawal\n3. Transaction History\n4. Logout\n")
		choice, err := s.promptInt("Enter choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			s.showBalance(ctx, account)
		case 2:
			if err := s.withdraw(ctx, account); err != nil {
				return err
			}
		case 3:
			s.showHistory(ctx, account.Number)
		case 4:
			s.printf("Logging out...\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Session) showBalance(ctx context.Context, account *core.Account) {
	balance, err := s.svc.Inquire(ctx, account)
	if err != nil {
		s.printf("Unable to read balance.\n")
		return
	}
	s.line()
	s.printf("Account: %d | Name: %s\n", account.Number, account.Name)
	s.printf("Available Balance: %s\n", balance)
	s.line()
}

func (s *Session) withdraw(ctx context.Context, account *core.Account) error {
	amount, err := s.promptInt("Enter amount to withdraw (multiples of 100): ")
	if err != nil {
		return err
	}

	_, werr := s.svc.Withdraw(ctx, account, amount, func(plan core.DenominationPlan) bool {
		s.line()
		s.printf("Dispensing:\n")
		for _, d := range core.Denominations {
			if plan[d] > 0 {
				s.printf("%d x %d\n", d, plan[d])
			}
		}
		s.line()
		confirm, err := s.promptInt("Confirm withdrawal? (1=Yes, 0=No): ")
		return err == nil && confirm == 1
	})
	switch {
	case werr == nil:
		s.printf("Transaction successful. New balance: %s\n", account.Balance)
	case errors.Is(werr, core.ErrInvalidAmount):
		s.printf("Amount must be a positive multiple of 100.\n")
	case errors.Is(werr, core.ErrInsufficientFunds):
		s.printf("Insufficient balance.\n")
	case errors.Is(werr, core.ErrInsufficientCash):
		s.printf("ATM does not have enough cash.\n")
	case errors.Is(werr, core.ErrInfeasible):
		s.printf("ATM cannot dispense the requested amount with available denominations.\n")
	case errors.Is(werr, core.ErrDeclined):
		s.printf("Withdrawal cancelled.\n")
	default:
		s.printf("Withdrawal failed: %v\n", werr)
	}
	return nil
}

func (s *Session) showHistory(ctx context.Context, number int64) {
	records, err := s.svc.History(ctx, number)
	if err != nil {
		s.printf("No transaction history found.\n")
		return
	}
	s.line()
	s.printf("Transaction History for Account %d\n", number)
	s.line()
	if len(records) == 0 {
		s.printf("No transactions found for this account.\n")
	}
	for _, rec := range records {
		s.printf("[%s] %s : %s | Balance: %s\n",
			rec.CreatedAt.Format(core.TimeFormat), rec.Kind, rec.Amount, rec.Balance)
	}
	s.line()
}

func (s *Session) adminMenu(ctx context.Context) error {
	pin, err := s.promptInt("Enter admin PIN: ")
	if err != nil {
		return err
	}
	if int(pin) != s.adminPIN {
		s.printf("Invalid admin PIN.\n")
		return nil
	}

	for {
		s.line()
		s.printf("Admin Menu:\n1. View ATM inventory\n2. Refill ATM notes\n3. View all accounts\n4. Unlock account\n5. Exit admin\n")
		choice, err := s.promptInt("Enter choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			s.showInventory()
		case 2:
			if err := s.refill(ctx); err != nil {
				return err
			}
		case 3:
			s.listAccounts()
		case 4:
			if err := s.unlock(ctx); err != nil {
				return err
			}
		case 5:
			s.printf("Exiting admin menu.\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Session) showInventory() {
	inv := s.svc.Inventory()
	s.line()
	s.printf("ATM Inventory:\n")
	for _, d := range core.Denominations {
		s.printf("%d x %d\n", d, inv.Count(d))
	}
	s.printf("Total cash: %d\n", inv.TotalValue())
	s.line()
}

func (s *Session) refill(ctx context.Context) error {
	deltas := make(map[core.Denomination]int, len(core.Denominations))
	for _, d := range core.Denominations {
		n, err := s.promptInt(fmt.Sprintf("Enter additional %d notes to add: ", d))
		if err != nil {
			return err
		}
		deltas[d] = int(n)
	}
	if err := s.svc.Refill(ctx, deltas); err != nil {
		s.printf("Invalid (negative) input. Operation cancelled.\n")
		return nil
	}
	s.printf("ATM refilled successfully.\n")
	return nil
}

func (s *Session) listAccounts() {
	s.line()
	s.printf("Accounts List:\n")
	for _, a := range s.svc.Ledger().Accounts() {
		locked := "No"
		if a.Locked {
			locked = "Yes"
		}
		s.printf("Acc: %d | Name: %s | Bal: %s | Locked: %s\n",
			a.Number, a.Name, a.Balance, locked)
	}
	s.line()
}

func (s *Session) unlock(ctx context.Context) error {
	number, err := s.promptInt("Enter account number to unlock: ")
	if err != nil {
		return err
	}
	if err := s.svc.Unlock(ctx, number); err != nil {
		s.printf("Account not found.\n")
		return nil
	}
	s.printf("Account %d unlocked.\n", number)
	return nil
}
